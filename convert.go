package scriptbox

import (
	"fmt"
	"math"
	"reflect"

	serrors "github.com/reglet-dev/scriptbox/errors"
	"github.com/reglet-dev/scriptbox/internal/native"
)

// IntoJs is implemented by host types that can produce an engine value.
type IntoJs interface {
	IntoJs(x *Ctx) (Value, error)
}

// FromJs is implemented by host types that can populate themselves from an
// engine value. Implementations must not assume a specific variant without
// checking: the protocol is driven by script authors who can pass anything.
type FromJs interface {
	FromJs(x *Ctx, v Value) error
}

// IntoJsArgs is implemented by host types that convert into a fixed-arity
// argument list, preserving order.
type IntoJsArgs interface {
	IntoJsArgs(x *Ctx) ([]Value, error)
}

// Args is a plain ordered argument list.
type Args []any

// IntoJsArgs converts each element in order.
func (a Args) IntoJsArgs(x *Ctx) ([]Value, error) {
	out := make([]Value, len(a))
	for i, arg := range a {
		v, err := x.ToValue(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (x *Ctx) intoArgs(args []any) ([]native.Raw, error) {
	vals, err := Args(args).IntoJsArgs(x)
	if err != nil {
		return nil, err
	}
	raws := make([]native.Raw, len(vals))
	for i, v := range vals {
		raws[i] = v.raw
	}
	return raws, nil
}

// ToValue produces an engine value from a host value. Compound host types
// (slices, string-keyed maps) build the corresponding array and object
// shapes.
func (x *Ctx) ToValue(v any) (Value, error) {
	x.scope.ensure("ToValue")
	switch t := v.(type) {
	case nil:
		return x.wrap(native.Null()), nil
	case Value:
		x.check(t, "ToValue")
		return t, nil
	case Object:
		x.check(t.v, "ToValue")
		return t.v, nil
	case Array:
		x.check(t.v, "ToValue")
		return t.v, nil
	case Function:
		x.check(t.v, "ToValue")
		return t.v, nil
	case IntoJs:
		return t.IntoJs(x)
	case bool:
		return x.wrap(x.inner.NewBool(t)), nil
	case int:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case int8:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case int16:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case int32:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case int64:
		return x.wrap(x.inner.NewInt(t)), nil
	case uint:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case uint8:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case uint16:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case uint32:
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case uint64:
		// Beyond 2^53 the engine's integers lose exactness anyway.
		if t > 1<<53 {
			return x.wrap(x.inner.NewFloat(float64(t))), nil
		}
		return x.wrap(x.inner.NewInt(int64(t))), nil
	case float32:
		return x.wrap(x.inner.NewFloat(float64(t))), nil
	case float64:
		return x.wrap(x.inner.NewFloat(t)), nil
	case string:
		return x.wrap(x.inner.NewString(t)), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]native.Raw, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := x.ToValue(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = ev.raw
		}
		return x.wrap(x.inner.NewArray(items)), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, &serrors.IntoJsError{From: fmt.Sprintf("%T", v), To: "object", Message: "map keys must be strings"}
		}
		obj := x.inner.NewObject()
		iter := rv.MapRange()
		for iter.Next() {
			ev, err := x.ToValue(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			if !x.inner.SetPropertyStr(obj, iter.Key().String(), ev.raw) {
				return Value{}, x.exception()
			}
		}
		return x.wrap(obj), nil
	}
	return Value{}, &serrors.IntoJsError{From: fmt.Sprintf("%T", v), To: "value", Message: "unsupported host type"}
}

// FromValue produces a host value from an engine value, writing into dst,
// which must be a pointer. No silent defaulting: a variant mismatch is a
// FromJs error.
func (x *Ctx) FromValue(v Value, dst any) error {
	x.check(v, "FromValue")
	if f, ok := dst.(FromJs); ok {
		return f.FromJs(x, v)
	}
	switch d := dst.(type) {
	case *Value:
		*d = v
	case *bool:
		if v.kind != KindBool {
			return fromJsMismatch(v, "bool")
		}
		b, _ := x.inner.ToBool(v.raw)
		*d = b
	case *int:
		n, err := x.intFrom(v, "int")
		if err != nil {
			return err
		}
		*d = int(n)
	case *int32:
		n, err := x.intFrom(v, "int32")
		if err != nil {
			return err
		}
		*d = int32(n)
	case *int64:
		n, err := x.intFrom(v, "int64")
		if err != nil {
			return err
		}
		*d = n
	case *uint32:
		n, err := x.intFrom(v, "uint32")
		if err != nil {
			return err
		}
		if n < 0 || n > math.MaxUint32 {
			return &serrors.FromJsError{From: v.kind.String(), To: "uint32", Message: "out of range"}
		}
		*d = uint32(n)
	case *uint64:
		n, err := x.intFrom(v, "uint64")
		if err != nil {
			return err
		}
		if n < 0 {
			return &serrors.FromJsError{From: v.kind.String(), To: "uint64", Message: "out of range"}
		}
		*d = uint64(n)
	case *float64:
		switch v.kind {
		case KindInt, KindFloat:
			f, _ := x.inner.ToFloat64(v.raw)
			*d = f
		default:
			return fromJsMismatch(v, "float64")
		}
	case *float32:
		switch v.kind {
		case KindInt, KindFloat:
			f, _ := x.inner.ToFloat64(v.raw)
			*d = float32(f)
		default:
			return fromJsMismatch(v, "float32")
		}
	case *string:
		if v.kind != KindString {
			return fromJsMismatch(v, "string")
		}
		s, err := x.CoerceString(v)
		if err != nil {
			return err
		}
		*d = s
	case *[]any:
		arr, ok := v.AsArray()
		if !ok {
			return fromJsMismatch(v, "array")
		}
		out, err := x.exportArray(arr)
		if err != nil {
			return err
		}
		*d = out
	case *map[string]any:
		if v.kind != KindObject {
			return fromJsMismatch(v, "object")
		}
		obj, _ := v.AsObject()
		out, err := x.exportObject(obj)
		if err != nil {
			return err
		}
		*d = out
	case *Object:
		obj, ok := v.AsObject()
		if !ok {
			return fromJsMismatch(v, "object")
		}
		*d = obj
	case *Array:
		arr, ok := v.AsArray()
		if !ok {
			return fromJsMismatch(v, "array")
		}
		*d = arr
	case *Function:
		fn, ok := v.AsFunction()
		if !ok {
			return fromJsMismatch(v, "function")
		}
		*d = fn
	default:
		return &serrors.FromJsError{From: v.kind.String(), To: fmt.Sprintf("%T", dst), Message: "unsupported host type"}
	}
	return nil
}

// As converts an engine value to the host type T.
func As[T any](x *Ctx, v Value) (T, error) {
	var t T
	err := x.FromValue(v, &t)
	return t, err
}

func fromJsMismatch(v Value, to string) error {
	return &serrors.FromJsError{From: v.kind.String(), To: to}
}

func (x *Ctx) intFrom(v Value, to string) (int64, error) {
	switch v.kind {
	case KindInt:
		n, _ := x.inner.ToInt64(v.raw)
		return n, nil
	case KindFloat:
		f, _ := x.inner.ToFloat64(v.raw)
		if f != math.Trunc(f) || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &serrors.FromJsError{From: "float", To: to, Message: "not an integer"}
		}
		return int64(f), nil
	}
	return 0, fromJsMismatch(v, to)
}

// Export produces a plain Go value (bool, int64, float64, string, []any,
// map[string]any or nil) mirroring the engine value's structure.
func (x *Ctx) Export(v Value) (any, error) {
	x.check(v, "Export")
	switch v.kind {
	case KindUndefined, KindNull:
		return nil, nil
	case KindBool:
		b, _ := x.inner.ToBool(v.raw)
		return b, nil
	case KindInt:
		n, _ := x.inner.ToInt64(v.raw)
		return n, nil
	case KindFloat:
		f, _ := x.inner.ToFloat64(v.raw)
		return f, nil
	case KindString:
		return x.CoerceString(v)
	case KindArray:
		arr, _ := v.AsArray()
		return x.exportArray(arr)
	case KindObject, KindException:
		obj, _ := v.AsObject()
		return x.exportObject(obj)
	}
	return nil, &serrors.FromJsError{From: v.kind.String(), To: "any", Message: "not exportable"}
}

func (x *Ctx) exportArray(a Array) ([]any, error) {
	n := a.Len()
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		ev, err := a.Get(uint32(i))
		if err != nil {
			return nil, err
		}
		e, err := x.Export(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (x *Ctx) exportObject(o Object) (map[string]any, error) {
	out := make(map[string]any)
	for _, key := range o.Keys() {
		pv, err := o.Get(key)
		if err != nil {
			return nil, err
		}
		e, err := x.Export(pv)
		if err != nil {
			return nil, err
		}
		out[key] = e
	}
	return out, nil
}
