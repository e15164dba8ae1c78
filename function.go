package scriptbox

import (
	"github.com/reglet-dev/scriptbox/internal/native"
)

// Function is the host view of an engine function.
type Function struct {
	Object
}

// Call invokes the function with the given receiver and arguments. A nil
// receiver calls with undefined this. Arguments go through the argument
// conversion protocol, preserving order.
func (f Function) Call(this any, args ...any) (Value, error) {
	f.v.scope.ensure("Function.Call")
	x := f.ctx()
	thisRaw := native.Raw(nil)
	if this != nil {
		tv, err := x.ToValue(this)
		if err != nil {
			return Value{}, err
		}
		thisRaw = tv.raw
	}
	rawArgs, err := x.intoArgs(args)
	if err != nil {
		return Value{}, err
	}
	raw, ok := x.inner.Call(f.v.raw, thisRaw, rawArgs)
	if !ok {
		return Value{}, x.exception()
	}
	return x.wrap(raw), nil
}

// NewFunction exposes a host callback to scripts. An error returned by the
// callback is translated through the exception bridge and thrown inside the
// engine. The Ctx passed to fn belongs to whichever With invocation the call
// happens in, which may be a later one than the invocation that registered
// the callback.
func (x *Ctx) NewFunction(fn func(x *Ctx, args []Value) (Value, error)) Function {
	x.scope.ensure("NewFunction")
	c := x.context
	raw := x.inner.NewFunc(func(rawArgs []native.Raw) (native.Raw, native.RawObject) {
		cur := c.active
		if cur == nil {
			panic("scriptbox: host callback invoked outside a With invocation")
		}
		args := make([]Value, len(rawArgs))
		for i, a := range rawArgs {
			args[i] = cur.wrap(a)
		}
		res, err := fn(cur, args)
		if err != nil {
			return nil, cur.exceptionObject(err)
		}
		if res.raw == nil {
			return nil, nil
		}
		res.scope.ensureSame(cur.scope, "NewFunction result")
		return res.raw, nil
	})
	return Function{Object{v: x.wrap(raw)}}
}
