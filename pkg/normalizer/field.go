package normalizer

import "github.com/tidwall/gjson"

type Kind int

const (
	Absent Kind = iota
	Scalar
	Sequence
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	default:
		return "unsupported"
	}
}

// Field is a response value the remote service returns either as a bare
// string or as a sequence holding that string.
type Field struct {
	kind     Kind
	scalar   string
	sequence []string
}

func AbsentField() Field {
	return Field{kind: Absent}
}

func ScalarField(value string) Field {
	return Field{kind: Scalar, scalar: value}
}

func SequenceField(values ...string) Field {
	return Field{kind: Sequence, sequence: values}
}

// Decode classifies a raw JSON value once, at the response boundary.
func Decode(value gjson.Result) Field {
	switch {
	case !value.Exists():
		return AbsentField()
	case value.IsArray():
		elements := value.Array()
		sequence := make([]string, len(elements))
		for i, element := range elements {
			sequence[i] = element.String()
		}
		return SequenceField(sequence...)
	case value.Type == gjson.String:
		return ScalarField(value.Str)
	default:
		return Field{kind: Unsupported}
	}
}

func (f Field) Kind() Kind {
	return f.kind
}

// Value returns the normalized string of the field.
func (f Field) Value() (string, bool) {
	switch f.kind {
	case Scalar:
		return f.scalar, true
	case Sequence:
		if len(f.sequence) == 0 {
			return "", false
		}
		return f.sequence[0], true
	default:
		return "", false
	}
}
