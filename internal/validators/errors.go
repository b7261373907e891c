package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidRequest is matched by every *ValidationError.
	ErrInvalidRequest = errors.New("invalid request")
)
