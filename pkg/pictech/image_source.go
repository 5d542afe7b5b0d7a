package pictech

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/thebartekbanach/pictech/pkg/api"
)

// ImageSource points at the input image of a task. Base64 wins over Path,
// Path wins over URL.
type ImageSource struct {
	URL    string
	Base64 string
	Path   string
}

// fields resolves the source into the submit fields the remote service expects.
func (s ImageSource) fields(fs afero.Fs) (api.Fields, error) {
	switch {
	case strings.TrimSpace(s.Base64) != "":
		return api.Fields{"ImageBase64": CleanBase64Prefix(s.Base64)}, nil

	case s.Path != "":
		data, err := afero.ReadFile(fs, s.Path)
		if err != nil {
			return nil, fmt.Errorf("reading image %s: %w", s.Path, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("reading image %s: %w", s.Path, ErrEmptyImage)
		}
		return api.Fields{"ImageBase64": base64.StdEncoding.EncodeToString(data)}, nil

	case s.URL != "":
		return api.Fields{"ImageUrl": s.URL}, nil

	default:
		return nil, ErrImageSourceRequired
	}
}

// CleanBase64Prefix drops a data URL header such as "data:image/png;base64,"
// and surrounding whitespace. Blank input yields "".
func CleanBase64Prefix(value string) string {
	value = strings.TrimSpace(value)
	if index := strings.IndexByte(value, ','); index >= 0 {
		return strings.TrimSpace(value[index+1:])
	}

	return value
}

var (
	ErrImageSourceRequired = errors.New("image url, base64 data or path is required")
	ErrEmptyImage          = errors.New("image file is empty")
)
