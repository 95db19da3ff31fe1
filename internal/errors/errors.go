package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested zombie or record was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeDuplicateCreation indicates the owner already created a random zombie
	CodeDuplicateCreation Code = "duplicate_creation"

	// CodeNotReady indicates the zombie is still cooling down
	CodeNotReady Code = "not_ready"

	// CodeNotOwner indicates the caller does not own the zombie it acts with
	CodeNotOwner Code = "not_owner"

	// CodeSelfAttack indicates the defender belongs to the attacking owner
	CodeSelfAttack Code = "self_attack"

	// CodeInsufficientFee indicates the payment is below the required fee
	CodeInsufficientFee Code = "insufficient_fee"

	// CodeOracleUnavailable indicates the kitty registry could not supply genes
	CodeOracleUnavailable Code = "oracle_unavailable"

	// CodeUnauthorized indicates a privileged action invoked by another caller
	CodeUnauthorized Code = "unauthorized"

	// CodeConflict indicates stored state changed while the action was in flight
	CodeConflict Code = "conflict"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var zErr *Error
	if errors.As(err, &zErr) {
		return &Error{
			Code:    zErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(zErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// DuplicateCreation creates a duplicate creation error for owner
func DuplicateCreation(owner string) *Error {
	return Newf(CodeDuplicateCreation, "owner '%s' already created a zombie", owner).
		WithMeta("owner", owner)
}

// NotReadyf creates a formatted not ready error
func NotReadyf(format string, args ...any) *Error {
	return Newf(CodeNotReady, format, args...)
}

// NotOwnerf creates a formatted not owner error
func NotOwnerf(format string, args ...any) *Error {
	return Newf(CodeNotOwner, format, args...)
}

// SelfAttackf creates a formatted self attack error
func SelfAttackf(format string, args ...any) *Error {
	return Newf(CodeSelfAttack, format, args...)
}

// InsufficientFeef creates a formatted insufficient fee error
func InsufficientFeef(format string, args ...any) *Error {
	return Newf(CodeInsufficientFee, format, args...)
}

// OracleUnavailable wraps a kitty registry failure
func OracleUnavailable(err error, message string) *Error {
	if err == nil {
		return New(CodeOracleUnavailable, message)
	}
	return WrapWithCode(err, CodeOracleUnavailable, message)
}

// Unauthorizedf creates a formatted unauthorized error
func Unauthorizedf(format string, args ...any) *Error {
	return Newf(CodeUnauthorized, format, args...)
}

// Conflictf creates a formatted conflict error
func Conflictf(format string, args ...any) *Error {
	return Newf(CodeConflict, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var zErr *Error
	if errors.As(err, &zErr) {
		return zErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsNotReady checks if the error is a not ready error
func IsNotReady(err error) bool {
	return Is(err, CodeNotReady)
}

// IsOracleUnavailable checks if the error came from the kitty registry
func IsOracleUnavailable(err error) bool {
	return Is(err, CodeOracleUnavailable)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var zErr *Error
	if errors.As(err, &zErr) {
		return zErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var zErr *Error
	if errors.As(err, &zErr) {
		return zErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
