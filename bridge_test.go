package scriptbox

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/reglet-dev/scriptbox/errors"
)

func TestExceptionRoundTrip(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.NewErrorValue(&serrors.ExceptionError{
			Message: "boom",
			File:    "",
			Line:    -1,
			Stack:   "",
		})
		require.NoError(t, err)
		require.Equal(t, KindException, v.Kind())

		require.NoError(t, x.Globals().Set("boom", v))
		caught, err := x.Eval("try { throw boom } catch (e) { e }")
		require.NoError(t, err)

		ex, err := x.ErrorFromValue(caught)
		require.NoError(t, err)
		assert.Equal(t, "boom", ex.Message)
		assert.Equal(t, "", ex.File)
		assert.Equal(t, -1, ex.Line)
		assert.Equal(t, "", ex.Stack)
		return nil
	})
	require.NoError(t, err)
}

func TestExceptionRoundTripAllFields(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		in := &serrors.ExceptionError{
			Message: "boom",
			File:    "script.js",
			Line:    7,
			Stack:   "at boom (script.js:7)",
		}
		v, err := x.NewErrorValue(in)
		require.NoError(t, err)

		out, err := x.ErrorFromValue(v)
		require.NoError(t, err)
		assert.Equal(t, in, out)
		return nil
	})
	require.NoError(t, err)
}

func TestErrorFromValueMismatch(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		obj, err := x.Eval("({})")
		require.NoError(t, err)
		_, err = x.ErrorFromValue(obj)
		var fromJs *serrors.FromJsError
		require.True(t, stdErrors.As(err, &fromJs))
		assert.Equal(t, "object", fromJs.From)
		assert.Equal(t, "error", fromJs.To)

		num, err := x.Eval("42")
		require.NoError(t, err)
		_, err = x.ErrorFromValue(num)
		require.True(t, stdErrors.As(err, &fromJs))
		assert.Equal(t, "int", fromJs.From)
		assert.Equal(t, "object", fromJs.To)
		return nil
	})
	require.NoError(t, err)
}

func TestEvalThrownError(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		_, err := x.Eval(`throw new Error("kaboom")`)
		require.Error(t, err)

		var ex *serrors.ExceptionError
		require.True(t, stdErrors.As(err, &ex))
		assert.Equal(t, "kaboom", ex.Message)
		return nil
	})
	require.NoError(t, err)
}

func TestEvalThrownNonError(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		// Non-error-like thrown values fall back to stringification.
		_, err := x.Eval("throw 42")
		require.Error(t, err)

		var ex *serrors.ExceptionError
		require.True(t, stdErrors.As(err, &ex))
		assert.Equal(t, "42", ex.Message)
		assert.Equal(t, -1, ex.Line)
		return nil
	})
	require.NoError(t, err)
}

func TestEvalThrownOpaqueValue(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		// Neither error-like nor stringifiable.
		_, err := x.Eval("throw Object.create(null)")
		require.Error(t, err)

		var ex *serrors.ExceptionError
		require.True(t, stdErrors.As(err, &ex))
		assert.Equal(t, "", ex.Message)
		assert.Equal(t, -1, ex.Line)

		// The failed stringification must not leave a stale pending
		// exception behind.
		n, err := EvalAs[int64](x, "1+1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		return nil
	})
	require.NoError(t, err)
}

func TestNewErrorValueGenericError(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.NewErrorValue(&serrors.UnknownError{})
		require.NoError(t, err)

		ex, err := x.ErrorFromValue(v)
		require.NoError(t, err)
		assert.Equal(t, "engine created an unknown error", ex.Message)
		return nil
	})
	require.NoError(t, err)
}
