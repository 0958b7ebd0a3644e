package domain

import "errors"

// ValidationError represents malformed input: unparseable symbols,
// empty configuration, bad pair keys. Never retried, surfaced directly.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation checks whether an error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExternalDependencyError represents a provider or network failure,
// tagged with the exchange it originated from.
type ExternalDependencyError struct {
	Exchange Exchange
	Message  string
	Err      error // Underlying error, may be nil
}

func (e *ExternalDependencyError) Error() string {
	msg := string(e.Exchange) + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExternalDependencyError) Unwrap() error {
	return e.Err
}

// NewExternalDependencyError creates an error for a failed exchange call.
func NewExternalDependencyError(exchange Exchange, message string, err error) *ExternalDependencyError {
	return &ExternalDependencyError{Exchange: exchange, Message: message, Err: err}
}

// IsExternalDependency checks whether an error is an ExternalDependencyError.
func IsExternalDependency(err error) bool {
	var de *ExternalDependencyError
	return errors.As(err, &de)
}

// RepositoryError represents a persistence failure. Surfaced, never retried.
type RepositoryError struct {
	Message string
	Err     error
}

func (e *RepositoryError) Error() string {
	msg := "repository: " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError wraps a storage failure.
func NewRepositoryError(message string, err error) *RepositoryError {
	return &RepositoryError{Message: message, Err: err}
}

// IsRepository checks whether an error is a RepositoryError.
func IsRepository(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re)
}

var (
	// ErrAlreadyRunning is returned by Start when trading is already active.
	ErrAlreadyRunning = errors.New("trading already running")

	// ErrNotRunning is returned by Stop when no connection is active.
	ErrNotRunning = errors.New("trading not running")
)
