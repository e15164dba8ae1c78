package scriptbox

import (
	"reflect"

	"github.com/dop251/goja"

	"github.com/reglet-dev/scriptbox/internal/native"
)

// Kind identifies the variant of an engine value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindSymbol
	KindObject
	KindArray
	KindFunction
	KindException
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindSymbol:    "symbol",
	KindObject:    "object",
	KindArray:     "array",
	KindFunction:  "function",
	KindException: "exception",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is the host representation of an engine-side datum. Every Value is
// tagged with the scope of the With invocation that produced it and becomes
// unusable once that invocation returns.
type Value struct {
	scope *scope
	kind  Kind
	raw   native.Raw
}

// classify maps a validated native handle onto the closed Kind set.
func classify(raw native.Raw) Kind {
	if raw == nil || goja.IsUndefined(raw) {
		return KindUndefined
	}
	if goja.IsNull(raw) {
		return KindNull
	}
	if _, ok := raw.(*goja.Symbol); ok {
		return KindSymbol
	}
	if obj, ok := raw.(*goja.Object); ok {
		if _, fn := goja.AssertFunction(obj); fn {
			return KindFunction
		}
		switch obj.ClassName() {
		case "Array":
			return KindArray
		case "Error":
			return KindException
		}
		return KindObject
	}
	switch raw.ExportType().Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int64:
		return KindInt
	case reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	}
	return KindObject
}

// Kind returns the value's variant.
func (v Value) Kind() Kind {
	return v.kind
}

// IsUndefined reports whether the value is the undefined variant.
func (v Value) IsUndefined() bool {
	return v.kind == KindUndefined
}

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Equal compares two values: structurally for primitives and by reference
// identity for objects, following the engine's strict equality.
func (v Value) Equal(o Value) bool {
	v.scope.ensureSame(o.scope, "Equal")
	if v.raw == nil || o.raw == nil {
		return v.kind == o.kind
	}
	return v.raw.StrictEquals(o.raw)
}

// object returns the validated native object handle. Callers must have
// checked the kind.
func (v Value) object() native.RawObject {
	obj, ok := v.raw.(*goja.Object)
	if !ok {
		panic("scriptbox: value is not an object")
	}
	return obj
}

// AsObject returns an Object view of the value. Arrays, functions and
// exceptions are objects too.
func (v Value) AsObject() (Object, bool) {
	switch v.kind {
	case KindObject, KindArray, KindFunction, KindException:
		return Object{v: v}, true
	}
	return Object{}, false
}

// AsArray returns an Array view of the value.
func (v Value) AsArray() (Array, bool) {
	if v.kind != KindArray {
		return Array{}, false
	}
	return Array{Object{v: v}}, true
}

// AsFunction returns a Function view of the value.
func (v Value) AsFunction() (Function, bool) {
	if v.kind != KindFunction {
		return Function{}, false
	}
	return Function{Object{v: v}}, true
}
