package scriptbox

// Object is the host view of an engine object. It shares its native handle
// with the engine's garbage collector; the wrapper only carries the scope
// tag of the invocation that produced it.
type Object struct {
	v Value
}

// Value returns the object as a plain Value.
func (o Object) Value() Value {
	return o.v
}

func (o Object) ctx() *Ctx {
	return o.v.scope.ctx
}

// Get reads the property named by key, which may be a string, an integer or
// an Atom. A throwing getter surfaces as an ExceptionError.
func (o Object) Get(key any) (Value, error) {
	o.v.scope.ensure("Object.Get")
	x := o.ctx()
	atom, err := x.NewAtom(key)
	if err != nil {
		return Value{}, err
	}
	raw, ok := x.inner.GetPropertyStr(o.v.object(), atom.key)
	if !ok {
		return Value{}, x.exception()
	}
	return x.wrap(raw), nil
}

// Set writes the property named by key, converting val through the
// conversion protocol.
func (o Object) Set(key any, val any) error {
	o.v.scope.ensure("Object.Set")
	x := o.ctx()
	atom, err := x.NewAtom(key)
	if err != nil {
		return err
	}
	jv, err := x.ToValue(val)
	if err != nil {
		return err
	}
	if !x.inner.SetPropertyStr(o.v.object(), atom.key, jv.raw) {
		return x.exception()
	}
	return nil
}

// Keys returns the object's own enumerable property names.
func (o Object) Keys() []string {
	o.v.scope.ensure("Object.Keys")
	return o.v.object().Keys()
}

// IsError reports whether the object is an engine Error instance.
func (o Object) IsError() bool {
	o.v.scope.ensure("Object.IsError")
	return o.v.object().ClassName() == "Error"
}
