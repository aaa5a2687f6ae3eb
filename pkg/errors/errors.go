// Package errors provides structured error handling for repool
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents resource not found errors
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeConflict represents conflicting registrations, such as a
	// duplicate pool name declared at setup time
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeNotOwned represents a release of an instance the pool
	// never manufactured
	ErrorTypeNotOwned ErrorType = "not_owned"
	// ErrorTypeAlreadyFree represents a release of an instance that is
	// not currently checked out
	ErrorTypeAlreadyFree ErrorType = "already_free"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling compatibility with errors.Is
// and errors.As for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. This method can be
// chained for adding multiple details.
//
// Example:
//
//	err := errors.New(ErrorTypeConflict, "duplicate pool name").
//	    WithDetail("name", spec.Name).
//	    WithDetail("index", i)
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, automatically
// capturing the call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the
// original error as the cause. If the error is already a structured Error,
// its stack trace is preserved. Returns nil if the input error is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type, useful for conditional
// logic based on error categories.
//
// Example:
//
//	if errors.IsType(err, errors.ErrorTypeAlreadyFree) {
//	    // the instance was returned twice; a caller contract violation
//	}
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
