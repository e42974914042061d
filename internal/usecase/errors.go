package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ValidationError carries a message that is safe to return to API clients verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidInput(message string) error {
	return &ValidationError{Message: message}
}
