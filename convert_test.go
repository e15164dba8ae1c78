package scriptbox

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/reglet-dev/scriptbox/errors"
)

func TestRoundTripPrimitives(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		for _, tc := range []any{
			int64(42),
			int64(-7),
			float64(3.5),
			true,
			false,
			"hello",
			"",
		} {
			v, err := x.ToValue(tc)
			require.NoError(t, err)
			back, err := x.Export(v)
			require.NoError(t, err)
			assert.Equal(t, tc, back)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestRoundTripCompound(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		slice := []any{int64(1), "x", true, []any{int64(2)}}
		v, err := x.ToValue(slice)
		require.NoError(t, err)
		require.Equal(t, KindArray, v.Kind())
		back, err := As[[]any](x, v)
		require.NoError(t, err)
		assert.Equal(t, slice, back)

		m := map[string]any{"a": int64(1), "b": "c", "nested": map[string]any{"ok": true}}
		mv, err := x.ToValue(m)
		require.NoError(t, err)
		require.Equal(t, KindObject, mv.Kind())
		mback, err := As[map[string]any](x, mv)
		require.NoError(t, err)
		assert.Equal(t, m, mback)
		return nil
	})
	require.NoError(t, err)
}

func TestFromValueMismatch(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.Eval(`"not a number"`)
		require.NoError(t, err)

		_, err = As[int64](x, v)
		var fromJs *serrors.FromJsError
		require.True(t, stdErrors.As(err, &fromJs))
		assert.Equal(t, "string", fromJs.From)
		assert.Equal(t, "int64", fromJs.To)
		return nil
	})
	require.NoError(t, err)
}

func TestToValueUnsupported(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		_, err := x.ToValue(make(chan int))
		var intoJs *serrors.IntoJsError
		require.True(t, stdErrors.As(err, &intoJs))
		return nil
	})
	require.NoError(t, err)
}

// point exercises the custom conversion interfaces.
type point struct {
	X int64
	Y int64
}

func (p point) IntoJs(x *Ctx) (Value, error) {
	return x.ToValue(map[string]any{"x": p.X, "y": p.Y})
}

func (p *point) FromJs(x *Ctx, v Value) error {
	obj, ok := v.AsObject()
	if !ok {
		return &serrors.FromJsError{From: v.Kind().String(), To: "point"}
	}
	xv, err := obj.Get("x")
	if err != nil {
		return err
	}
	if p.X, err = As[int64](x, xv); err != nil {
		return err
	}
	yv, err := obj.Get("y")
	if err != nil {
		return err
	}
	p.Y, err = As[int64](x, yv)
	return err
}

func TestCustomConversion(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.ToValue(point{X: 3, Y: -4})
		require.NoError(t, err)

		var back point
		require.NoError(t, x.FromValue(v, &back))
		assert.Equal(t, point{X: 3, Y: -4}, back)
		return nil
	})
	require.NoError(t, err)
}

func TestFunctionCallPreservesArgumentOrder(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.Eval("(...args) => args.join('-')")
		require.NoError(t, err)
		fn, ok := v.AsFunction()
		require.True(t, ok)

		res, err := fn.Call(nil, "a", "b", "c")
		require.NoError(t, err)
		joined, err := As[string](x, res)
		require.NoError(t, err)
		assert.Equal(t, "a-b-c", joined)
		return nil
	})
	require.NoError(t, err)
}

func TestFunctionCall(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.Eval("(a, b) => a + b")
		require.NoError(t, err)
		fn, ok := v.AsFunction()
		require.True(t, ok)

		res, err := fn.Call(nil, 1, 2)
		require.NoError(t, err)
		sum, err := As[int64](x, res)
		require.NoError(t, err)
		assert.Equal(t, int64(3), sum)
		return nil
	})
	require.NoError(t, err)
}

func TestHostFunction(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		double := x.NewFunction(func(x *Ctx, args []Value) (Value, error) {
			if len(args) != 1 {
				return Value{}, &serrors.FromJsError{From: "arguments", To: "int64", Message: "expected one argument"}
			}
			n, err := As[int64](x, args[0])
			if err != nil {
				return Value{}, err
			}
			return x.ToValue(n * 2)
		})
		require.NoError(t, x.Globals().Set("double", double))

		n, err := EvalAs[int64](x, "double(21)")
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)

		// A host error is thrown into the engine as a TypeError.
		caught, err := EvalAs[string](x, "try { double() } catch (e) { e.name + ': ' + e.message }")
		require.NoError(t, err)
		assert.Contains(t, caught, "TypeError")
		assert.Contains(t, caught, "expected one argument")
		return nil
	})
	require.NoError(t, err)
}
