package scriptbox

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/reglet-dev/scriptbox/errors"
)

func TestArrayFromScript(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.Eval(`
			let a = [1,2,3,4,10,"b"]
			a[6] = {}
			a[10] = () => {"hallo"};
			a
		`)
		require.NoError(t, err)
		require.Equal(t, KindArray, v.Kind())

		arr, ok := v.AsArray()
		require.True(t, ok)
		assert.Equal(t, 11, arr.Len())
		assert.False(t, arr.IsEmpty())

		three, err := GetAs[int64](arr, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(4), three)

		four, err := GetAs[int64](arr, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(10), four)

		six, err := arr.Get(6)
		require.NoError(t, err)
		assert.Equal(t, KindObject, six.Kind())

		ten, err := arr.Get(10)
		require.NoError(t, err)
		assert.Equal(t, KindFunction, ten.Kind())

		// Holes read as undefined.
		hole, err := arr.Get(7)
		require.NoError(t, err)
		assert.Equal(t, KindUndefined, hole.Kind())
		return nil
	})
	require.NoError(t, err)
}

func TestArrayOutOfRange(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		v, err := x.Eval("[1,2,3]")
		require.NoError(t, err)
		arr, ok := v.AsArray()
		require.True(t, ok)

		// No bounds pre-check: the engine yields undefined, which cannot
		// become an int64.
		oob, err := arr.Get(9)
		require.NoError(t, err)
		assert.Equal(t, KindUndefined, oob.Kind())

		_, err = As[int64](x, oob)
		var fromJs *serrors.FromJsError
		require.True(t, stdErrors.As(err, &fromJs))
		assert.Equal(t, "undefined", fromJs.From)
		return nil
	})
	require.NoError(t, err)
}

func TestValueEquality(t *testing.T) {
	c := newTestContext(t)
	err := c.With(func(x *Ctx) error {
		a, err := x.Eval("40 + 2")
		require.NoError(t, err)
		b, err := x.Eval("42")
		require.NoError(t, err)
		assert.True(t, a.Equal(b), "primitive equality is structural")

		o1, err := x.Eval("globalThis.shared = {}; shared")
		require.NoError(t, err)
		o2, err := x.Eval("shared")
		require.NoError(t, err)
		o3, err := x.Eval("({})")
		require.NoError(t, err)
		assert.True(t, o1.Equal(o2), "object equality is reference identity")
		assert.False(t, o1.Equal(o3))
		return nil
	})
	require.NoError(t, err)
}
