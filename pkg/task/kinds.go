package task

import "errors"

// Kind describes one family of remote tasks.
type Kind struct {
	Name           string
	SubmitEndpoint string
	QueryEndpoint  string

	// RequiredFields must resolve to a value once the task succeeded.
	RequiredFields []string
	OptionalFields []string
}

var (
	Translation = Kind{
		Name:           "translation",
		SubmitEndpoint: "/submit_task",
		QueryEndpoint:  "/query_result",
		RequiredFields: []string{"FinalImageUrl"},
		OptionalFields: []string{"InPaintingUrl", "SourceUrl", "TemplateJson"},
	}

	BackgroundRemoval = Kind{
		Name:           "remove-background",
		SubmitEndpoint: "/submit_remove_background_task",
		QueryEndpoint:  "/query_remove_background_result",
		RequiredFields: []string{"OutputUrl"},
	}
)

var knownKinds = []Kind{Translation, BackgroundRemoval}

func KindByName(name string) (Kind, error) {
	for _, kind := range knownKinds {
		if kind.Name == name {
			return kind, nil
		}
	}

	return Kind{}, ErrUnknownKind
}

func (k Kind) ResultFields() []string {
	fields := make([]string, 0, len(k.RequiredFields)+len(k.OptionalFields))
	fields = append(fields, k.RequiredFields...)
	return append(fields, k.OptionalFields...)
}

var ErrUnknownKind = errors.New("unknown task kind")
