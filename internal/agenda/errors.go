package agenda

import "errors"

var (
	// ErrIndexOutOfRange indicates an index or row ID that does not address
	// a current row. Reaching it from the UI is a programming defect.
	ErrIndexOutOfRange = errors.New("agenda index out of range")

	// ErrFieldValue indicates a value of the wrong type for the field.
	ErrFieldValue = errors.New("agenda field value has wrong type")
)
