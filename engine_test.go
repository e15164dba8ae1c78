package scriptbox

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.NoError(t, e.Close())
	// Close is idempotent.
	assert.NoError(t, e.Close())
}

func TestNewContext(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()

	full, err := NewContext(e)
	require.NoError(t, err)
	defer full.Close()

	base, err := NewBaseContext(e)
	require.NoError(t, err)
	defer base.Close()
}

func TestBaseRegistersFewerGlobals(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()

	full, err := NewContext(e)
	require.NoError(t, err)
	defer full.Close()
	base, err := NewBaseContext(e)
	require.NoError(t, err)
	defer base.Close()

	count := func(c *Context) int64 {
		n, err := WithResult(c, func(x *Ctx) (int64, error) {
			return EvalAs[int64](x, "Object.getOwnPropertyNames(globalThis).length")
		})
		require.NoError(t, err)
		return n
	}

	assert.Less(t, count(base), count(full))
}

func TestWithIsExclusive(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()

	c1, err := NewContext(e)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := NewContext(e)
	require.NoError(t, err)
	defer c2.Close()

	var active, violations int32
	var wg sync.WaitGroup
	contexts := []*Context{c1, c2}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(c *Context) {
			defer wg.Done()
			err := c.With(func(x *Ctx) error {
				if atomic.AddInt32(&active, 1) > 1 {
					atomic.AddInt32(&violations, 1)
				}
				_, err := x.Eval("(() => { let s = 0; for (let i = 0; i < 1000; i++) { s += i } return s })()")
				atomic.AddInt32(&active, -1)
				return err
			})
			assert.NoError(t, err)
		}(contexts[i%2])
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&violations),
		"two With invocations were inside their closures at the same time")
}

func TestWithReleasesGateOnPanic(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()

	c, err := NewContext(e)
	require.NoError(t, err)
	defer c.Close()

	assert.Panics(t, func() {
		_ = c.With(func(x *Ctx) error {
			panic("host bug")
		})
	})

	// The gate must have been released.
	err = c.With(func(x *Ctx) error {
		_, err := x.Eval("1")
		return err
	})
	assert.NoError(t, err)
}
