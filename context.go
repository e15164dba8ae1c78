package scriptbox

import (
	serrors "github.com/reglet-dev/scriptbox/errors"
	"github.com/reglet-dev/scriptbox/internal/native"
)

// Context is a single execution context with its own global variables and
// call stack. Contexts of the same Engine share the interpreter's heap, so
// every operation on any of them serializes through the Engine's mutex.
type Context struct {
	eng    *Engine
	inner  *native.Context
	active *Ctx // the in-flight With invocation, if any; guarded by eng.mu
	closed bool
}

// NewContext creates a context with all standard intrinsics registered. Use
// Build for precise control over which intrinsic groups are available.
func NewContext(e *Engine) (*Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	inner := e.inner.NewContextFull()
	if inner == nil {
		return nil, &serrors.AllocationError{}
	}
	e.logger.Debug("context created", "mode", "full")
	return &Context{eng: e, inner: inner}, nil
}

// NewBaseContext creates a context with only the base intrinsics registered.
// If additional intrinsics are required use NewContext or Build.
func NewBaseContext(e *Engine) (*Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	inner := e.inner.NewContextRaw()
	if inner == nil {
		return nil, &serrors.AllocationError{}
	}
	e.logger.Debug("context created", "mode", "base")
	return &Context{eng: e, inner: inner}, nil
}

// SetMaxStackSize bounds the context's recursion depth to roughly the given
// number of stack bytes. The effect is engine-wide state, so the exclusive
// gate is held.
func (c *Context) SetMaxStackSize(bytes uint64) {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()
	if c.closed {
		panic("scriptbox: SetMaxStackSize called on a closed Context")
	}
	c.inner.SetMaxStackSize(bytes)
}

// EnableBigNumExt toggles the big-number extension for this context.
func (c *Context) EnableBigNumExt(enable bool) {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()
	if c.closed {
		panic("scriptbox: EnableBigNumExt called on a closed Context")
	}
	c.inner.EnableBigNum(enable)
}

// With acquires the engine's exclusive gate, manufactures a fresh access
// token and invokes f with it. The gate is held for the entire closure and
// released on every exit path, including panics. This is the only way to
// obtain a Ctx; no two invocations against the same Engine ever overlap,
// even across different Contexts.
func (c *Context) With(f func(*Ctx) error) error {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()
	if c.closed {
		panic("scriptbox: With called on a closed Context")
	}
	sc := &scope{live: true}
	ctx := &Ctx{context: c, inner: c.inner, scope: sc, log: c.eng.logger}
	sc.ctx = ctx
	c.active = ctx
	defer func() {
		sc.live = false
		c.active = nil
	}()
	return f(ctx)
}

// WithResult is like Context.With for closures that produce a value.
func WithResult[R any](c *Context, f func(*Ctx) (R, error)) (R, error) {
	var res R
	err := c.With(func(ctx *Ctx) error {
		var ferr error
		res, ferr = f(ctx)
		return ferr
	})
	return res, err
}

// Close frees the context's native resources under the engine gate. Close is
// idempotent; using the context afterwards panics.
func (c *Context) Close() error {
	c.eng.mu.Lock()
	defer c.eng.mu.Unlock()
	if c.closed {
		return nil
	}
	c.eng.inner.FreeContext(c.inner)
	c.closed = true
	c.eng.logger.Debug("context closed")
	return nil
}
