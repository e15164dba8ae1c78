package scriptbox

// Array is the host view of an engine array.
type Array struct {
	Object
}

// Len reads the array's live length property. The engine maintains it as an
// integer; anything else is an invariant bug, not user input.
func (a Array) Len() int {
	a.v.scope.ensure("Array.Len")
	x := a.ctx()
	raw, ok := x.inner.GetPropertyStr(a.v.object(), "length")
	if !ok {
		panic("scriptbox: reading array length threw")
	}
	length := x.wrap(raw)
	if length.kind != KindInt {
		panic("scriptbox: array length is not an integer")
	}
	n, _ := x.inner.ToInt64(raw)
	return int(n)
}

// IsEmpty reports whether the array has no elements.
func (a Array) IsEmpty() bool {
	return a.Len() == 0
}

// Get reads the element at idx. No bounds pre-check is performed;
// out-of-range reads yield the undefined value, which converts to an error
// for host types that cannot represent it.
func (a Array) Get(idx uint32) (Value, error) {
	a.v.scope.ensure("Array.Get")
	x := a.ctx()
	raw, ok := x.inner.GetPropertyIndex(a.v.object(), idx)
	if !ok {
		return Value{}, x.exception()
	}
	return x.wrap(raw), nil
}

// GetAs reads the element at idx and converts it to T.
func GetAs[T any](a Array, idx uint32) (T, error) {
	var zero T
	v, err := a.Get(idx)
	if err != nil {
		return zero, err
	}
	return As[T](a.ctx(), v)
}
