package learnhub

import "errors"

var (
	// ErrInvalidArgument is returned when a required input is missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned for unknown, expired or already graded quiz tokens.
	ErrNotFound = errors.New("not found")
	// ErrUpstream wraps any failure talking to the text generator or a search service.
	ErrUpstream = errors.New("upstream service error")
	// ErrMalformedOutput is returned when generator output cannot be parsed.
	ErrMalformedOutput = errors.New("malformed generator output")
)

// FieldError reports a missing required input. It matches ErrInvalidArgument.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return e.Field + " is required"
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func missingField(name string) error {
	return &FieldError{Field: name}
}
