package advance

// errors.go defines the coded error type used by the advance API

import "fmt"

// AdvanceError represents a structured error from the advance package.
type AdvanceError struct {
	// code classifies the error for HTTP mapping
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *AdvanceError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *AdvanceError) Code() ErrorCode { return e.code }
func (e *AdvanceError) Unwrap() error   { return e.wrapped }

// ErrorCode classifies errors returned by the advance API.
type ErrorCode int

const (

	// ErrCodeInvalidRequest is used when the request body cannot be parsed
	// or fails struct validation
	ErrCodeInvalidRequest ErrorCode = iota + 1

	// ErrCodeInvalidFrequency is used when pay_frequency is not one of
	// Weekly, Bi-Weekly, Monthly, Annually
	ErrCodeInvalidFrequency

	// ErrCodeNotFound is used when a requested loan does not exist
	ErrCodeNotFound

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware
	ErrCodeRequestTooLarge

	// ErrCodeStorage is used when the loan store fails
	ErrCodeStorage

	// ErrCodeInternalError is used when an unexpected internal error occurs
	ErrCodeInternalError
)

// NewInvalidRequestError creates an error for malformed or invalid requests.
func NewInvalidRequestError(msg string) error {
	return &AdvanceError{code: ErrCodeInvalidRequest, message: msg}
}

// WrapInvalidRequestError wraps an existing error as an invalid request error.
func WrapInvalidRequestError(err error, msg string) error {
	return &AdvanceError{code: ErrCodeInvalidRequest, message: msg, wrapped: err}
}

// NewInvalidFrequencyError creates an error for an unrecognized pay frequency.
//
// The message is returned verbatim to the client as the error detail.
func NewInvalidFrequencyError(msg string) error {
	return &AdvanceError{code: ErrCodeInvalidFrequency, message: msg}
}

// NewNotFoundError creates an error for a missing loan record.
func NewNotFoundError(msg string) error {
	return &AdvanceError{code: ErrCodeNotFound, message: msg}
}

// NewRateLimitError creates a rate limit exceeded error.
func NewRateLimitError(msg string) error {
	return &AdvanceError{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
func NewRequestTooLargeError(msg string) error {
	return &AdvanceError{code: ErrCodeRequestTooLarge, message: msg}
}

// WrapStorageError wraps a loan store failure.
// The client only ever sees a generic internal error detail; the wrapped
// error is logged server-side.
func WrapStorageError(err error, msg string) error {
	return &AdvanceError{code: ErrCodeStorage, message: msg, wrapped: err}
}

// NewInternalError creates an internal error for unexpected failures.
func NewInternalError(msg string) error {
	return &AdvanceError{code: ErrCodeInternalError, message: msg}
}

// WrapInternalError wraps an existing error as an internal error.
func WrapInternalError(err error, msg string) error {
	return &AdvanceError{code: ErrCodeInternalError, message: msg, wrapped: err}
}
