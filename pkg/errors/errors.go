// Package errors provides coded errors for dodist. Every failure that reaches
// a report or the CLI carries an ErrorCode that tests and callers can match
// on, plus free-form details such as the path involved.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Build errors
	ErrTransform   ErrorCode = "TRANSFORM_FAILED"
	ErrBuildFailed ErrorCode = "BUILD_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileDelete ErrorCode = "FILE_DELETE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ioVerbs phrase the message for I/O codes in ForPath.
var ioVerbs = map[ErrorCode]string{
	ErrFileAccess: "cannot read",
	ErrFileWrite:  "cannot write",
	ErrFileDelete: "cannot remove",
	ErrDirCreate:  "cannot create directory",
}

// DodistError represents a structured error with code and details
type DodistError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DodistError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DodistError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DodistError with the same code.
func (e *DodistError) Is(target error) bool {
	var targetErr *DodistError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// Path returns the "path" detail, or "" when there is none.
func (e *DodistError) Path() string {
	p, _ := e.Details["path"].(string)
	return p
}

func newError(code ErrorCode, message string, wrapped error) *DodistError {
	return &DodistError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates a new DodistError with the given code and message
func New(code ErrorCode, message string) *DodistError {
	return newError(code, message, nil)
}

// Newf creates a new DodistError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DodistError {
	return newError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap wraps err with a code. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *DodistError {
	if err == nil {
		return nil
	}
	return newError(code, message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DodistError {
	if err == nil {
		return nil
	}
	return newError(code, fmt.Sprintf(format, args...), err)
}

// ForPath wraps an I/O error on path with the given code and records the
// path as a detail. A path that does not exist is always ErrNotFound,
// whatever code was asked for, so callers can treat vanished entries as
// skips rather than failures.
func ForPath(err error, code ErrorCode, path string) *DodistError {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return newError(ErrNotFound, path+" does not exist", err).WithDetail("path", path)
	}

	verb, ok := ioVerbs[code]
	if !ok {
		verb = "cannot access"
	}
	return newError(code, verb+" "+path, err).WithDetail("path", path)
}

// WithDetail adds a detail to the error
func (e *DodistError) WithDetail(key string, value interface{}) *DodistError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DodistError) WithDetails(details map[string]interface{}) *DodistError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

func as(err error) (*DodistError, bool) {
	var dodistErr *DodistError
	ok := errors.As(err, &dodistErr)
	return dodistErr, ok
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DodistError
func GetErrorCode(err error) ErrorCode {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DodistError
func GetErrorDetails(err error) map[string]interface{} {
	if e, ok := as(err); ok {
		return e.Details
	}
	return nil
}
