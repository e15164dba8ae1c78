package scriptbox

import (
	"errors"

	serrors "github.com/reglet-dev/scriptbox/errors"
	"github.com/reglet-dev/scriptbox/internal/native"
)

// NewErrorValue builds an engine error value from a host error, the outbound
// half of the exception bridge. For an ExceptionError only the fields that
// are non-empty (or non-negative, for Line) are populated; any other error
// becomes an Error object carrying the formatted message.
func (x *Ctx) NewErrorValue(err error) (Value, error) {
	x.scope.ensure("NewErrorValue")
	obj := x.inner.NewError()
	var ex *serrors.ExceptionError
	if errors.As(err, &ex) {
		if ex.Message != "" {
			x.setErrorField(obj, "message", x.inner.NewString(ex.Message))
		}
		if ex.File != "" {
			x.setErrorField(obj, "fileName", x.inner.NewString(ex.File))
		}
		if ex.Line >= 0 {
			x.setErrorField(obj, "lineNumber", x.inner.NewInt(int64(ex.Line)))
		}
		if ex.Stack != "" {
			x.setErrorField(obj, "stack", x.inner.NewString(ex.Stack))
		}
	} else {
		x.setErrorField(obj, "message", x.inner.NewString(err.Error()))
	}
	return x.wrap(obj), nil
}

// setErrorField is best effort: the error-construction path must not itself
// fail, so a rejected write falls back to leaving the field absent.
func (x *Ctx) setErrorField(obj native.RawObject, key string, v native.Raw) {
	if !x.inner.SetPropertyStr(obj, key, v) {
		x.inner.PendingException()
	}
}

// exceptionObject maps a host error onto the engine object that will be
// thrown for it: out-of-memory for allocation failures, a TypeError for
// string and conversion shape errors, an InternalError for unrecognized
// kinds, and a populated Error object for structured exceptions.
func (x *Ctx) exceptionObject(err error) native.RawObject {
	var (
		alloc   *serrors.AllocationError
		invalid *serrors.InvalidStringError
		utf8Err *serrors.UTF8Error
		fromJs  *serrors.FromJsError
		intoJs  *serrors.IntoJsError
		unknown *serrors.UnknownError
		ex      *serrors.ExceptionError
	)
	switch {
	case errors.As(err, &alloc):
		return x.inner.NewInternalErrorObj("out of memory")
	case errors.As(err, &invalid), errors.As(err, &utf8Err), errors.As(err, &fromJs), errors.As(err, &intoJs):
		return x.inner.NewTypeErrorObj(err.Error())
	case errors.As(err, &unknown):
		return x.inner.NewInternalErrorObj(err.Error())
	case errors.As(err, &ex):
		v, _ := x.NewErrorValue(ex)
		return v.object()
	default:
		v, _ := x.NewErrorValue(err)
		return v.object()
	}
}

// ErrorFromValue converts a thrown engine value into the host taxonomy, the
// inbound half of the bridge. Values recognized as error-like yield an
// ExceptionError with absent fields defaulted to the empty string or -1;
// anything else yields a FromJs error naming the mismatch.
func (x *Ctx) ErrorFromValue(v Value) (*serrors.ExceptionError, error) {
	x.check(v, "ErrorFromValue")
	return x.errorFromRaw(v.raw)
}

func (x *Ctx) errorFromRaw(raw native.Raw) (*serrors.ExceptionError, error) {
	v := x.wrap(raw)
	obj, ok := v.AsObject()
	if !ok {
		return nil, &serrors.FromJsError{From: v.kind.String(), To: "object"}
	}
	if !obj.IsError() {
		return nil, &serrors.FromJsError{From: "object", To: "error"}
	}
	return &serrors.ExceptionError{
		Message: x.errorField(obj, "message"),
		File:    x.errorField(obj, "fileName"),
		Line:    x.errorLine(obj),
		Stack:   x.errorField(obj, "stack"),
	}, nil
}

// errorField reads a string field off an error object, defaulting to "" on
// absence or failure: reading an optional field while building an error must
// not itself fail.
func (x *Ctx) errorField(obj Object, key string) string {
	raw, ok := x.inner.GetPropertyStr(obj.v.object(), key)
	if !ok {
		x.inner.PendingException()
		return ""
	}
	fv := x.wrap(raw)
	if fv.kind != KindString {
		return ""
	}
	s, ok := x.inner.ToString(raw)
	if !ok {
		x.inner.PendingException()
		return ""
	}
	return s
}

func (x *Ctx) errorLine(obj Object) int {
	raw, ok := x.inner.GetPropertyStr(obj.v.object(), "lineNumber")
	if !ok {
		x.inner.PendingException()
		return -1
	}
	fv := x.wrap(raw)
	if fv.kind != KindInt && fv.kind != KindFloat {
		return -1
	}
	n, ok := x.inner.ToInt64(raw)
	if !ok {
		x.inner.PendingException()
		return -1
	}
	return int(n)
}
