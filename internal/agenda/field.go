package agenda

import "fmt"

// Field names an editable column of an agenda row.
type Field int

const (
	FieldLabel Field = iota
	FieldDuration
	FieldDetail
)

func (f Field) String() string {
	switch f {
	case FieldLabel:
		return "label"
	case FieldDuration:
		return "duration_minutes"
	case FieldDetail:
		return "detail"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ParseField maps a wire name to a Field.
func ParseField(s string) (Field, error) {
	switch s {
	case "label":
		return FieldLabel, nil
	case "duration_minutes", "duration":
		return FieldDuration, nil
	case "detail":
		return FieldDetail, nil
	}
	return 0, fmt.Errorf("unknown agenda field %q", s)
}
