package value

import "errors"

// Error kinds. Every failure raised by the engine wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	// ErrName is returned when a referenced column does not exist.
	ErrName = errors.New("name error")
	// ErrType is returned when an operator is applied to incompatible types.
	ErrType = errors.New("type error")
	// ErrSchema is returned for malformed input rows and duplicate column names.
	ErrSchema = errors.New("schema error")
	// ErrShape is returned when columns of different lengths are combined.
	ErrShape = errors.New("shape error")
)
