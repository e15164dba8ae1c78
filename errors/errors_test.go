package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationError(t *testing.T) {
	err := &AllocationError{}
	assert.Equal(t, "allocation failed while creating object", err.Error())

	var alloc *AllocationError
	require.True(t, stdErrors.As(err, &alloc))
}

func TestInvalidStringError(t *testing.T) {
	err := &InvalidStringError{Input: "a\x00b"}
	assert.Equal(t, "string contained internal null bytes", err.Error())
}

func TestExceptionError(t *testing.T) {
	err := &ExceptionError{
		Message: "boom",
		File:    "script.js",
		Line:    3,
		Stack:   "at foo",
	}
	assert.Equal(t, "exception generated by engine: [script.js]:3 boom\nat foo", err.Error())
	assert.True(t, IsException(err))
}

func TestExceptionError_AbsentFields(t *testing.T) {
	err := &ExceptionError{Message: "boom", Line: -1}
	assert.Equal(t, "exception generated by engine: []:-1 boom\n", err.Error())
}

func TestFromJsError(t *testing.T) {
	err := &FromJsError{From: "object", To: "error"}
	assert.Equal(t, "error converting from js from type 'object', to 'error': ", err.Error())

	withMsg := &FromJsError{From: "float", To: "int64", Message: "not an integer"}
	assert.Equal(t, "error converting from js from type 'float', to 'int64': not an integer", withMsg.Error())
}

func TestIntoJsError(t *testing.T) {
	err := &IntoJsError{From: "chan int", To: "value", Message: "unsupported host type"}
	assert.Equal(t, "error converting from type 'chan int', to 'value': unsupported host type", err.Error())
}

func TestIOError_Unwrap(t *testing.T) {
	base := fmt.Errorf("no such file")
	err := &IOError{Err: base}
	assert.Equal(t, "io error: no such file", err.Error())
	assert.True(t, stdErrors.Is(err, base))
}

func TestIsException_OtherKinds(t *testing.T) {
	assert.False(t, IsException(&UnknownError{}))
	assert.False(t, IsException(&UTF8Error{Input: "x"}))
	assert.False(t, IsException(fmt.Errorf("plain")))
}
