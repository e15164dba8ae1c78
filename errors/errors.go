// Package errors defines the closed error taxonomy used at the host/engine
// boundary. All types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
)

// AllocationError reports that the engine could not allocate memory.
// It is the only failure mode of engine and context construction.
type AllocationError struct{}

func (e *AllocationError) Error() string {
	return "allocation failed while creating object"
}

// InvalidStringError reports a host string containing an internal null byte,
// which the engine's source and key representation cannot carry.
type InvalidStringError struct {
	Input string
}

func (e *InvalidStringError) Error() string {
	return "string contained internal null bytes"
}

// UTF8Error reports an engine string that could not be decoded as UTF-8.
type UTF8Error struct {
	Input string
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("conversion from string failed: invalid UTF-8 in %q", e.Input)
}

// UnknownError reports a failure for which the engine left no pending
// exception. It keeps the taxonomy total when the native layer under-reports.
type UnknownError struct{}

func (e *UnknownError) Error() string {
	return "engine created an unknown error"
}

// ExceptionError is an exception raised by the engine itself, or a host error
// destined to be thrown into the engine. Absent fields are the empty string,
// or -1 for Line.
type ExceptionError struct {
	Message string
	File    string
	Line    int
	Stack   string
}

func (e *ExceptionError) Error() string {
	return fmt.Sprintf("exception generated by engine: [%s]:%d %s\n%s", e.File, e.Line, e.Message, e.Stack)
}

// FromJsError reports a failed conversion from an engine value to a host type.
type FromJsError struct {
	From    string
	To      string
	Message string
}

func (e *FromJsError) Error() string {
	return fmt.Sprintf("error converting from js from type '%s', to '%s': %s", e.From, e.To, e.Message)
}

// IntoJsError reports a failed conversion from a host type to an engine value.
type IntoJsError struct {
	From    string
	To      string
	Message string
}

func (e *IntoJsError) Error() string {
	return fmt.Sprintf("error converting from type '%s', to '%s': %s", e.From, e.To, e.Message)
}

// IOError wraps an I/O failure from surrounding tooling, such as loading a
// context profile from disk.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsException reports whether err is an engine-generated exception.
func IsException(err error) bool {
	var ex *ExceptionError
	return stdErrors.As(err, &ex)
}
