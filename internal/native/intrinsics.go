package native

import "github.com/dop251/goja"

// IntrinsicSet selects which optional intrinsic groups a context exposes.
// The base objects (Object, Function, Array, String, Number, Boolean, Math,
// Symbol and the error constructors) are always present.
type IntrinsicSet struct {
	Date       bool
	RegExp     bool
	JSON       bool
	Proxy      bool
	MapSet     bool
	TypedArray bool
	Eval       bool
	Promise    bool
	BigNum     bool
}

// FullIntrinsics enables every group.
func FullIntrinsics() IntrinsicSet {
	return IntrinsicSet{
		Date:       true,
		RegExp:     true,
		JSON:       true,
		Proxy:      true,
		MapSet:     true,
		TypedArray: true,
		Eval:       true,
		Promise:    true,
		BigNum:     true,
	}
}

// BaseIntrinsics enables only the always-present base objects.
func BaseIntrinsics() IntrinsicSet {
	return IntrinsicSet{}
}

// The engine registers every intrinsic on context creation; disabled groups
// are withheld by removing their globals before any script runs.
var intrinsicGlobals = map[string][]string{
	"date":       {"Date"},
	"regexp":     {"RegExp"},
	"json":       {"JSON"},
	"proxy":      {"Proxy", "Reflect"},
	"mapset":     {"Map", "Set", "WeakMap", "WeakSet", "WeakRef"},
	"typedarray": {"ArrayBuffer", "SharedArrayBuffer", "DataView", "Int8Array", "Uint8Array", "Uint8ClampedArray", "Int16Array", "Uint16Array", "Int32Array", "Uint32Array", "Float32Array", "Float64Array", "BigInt64Array", "BigUint64Array"},
	"eval":       {"eval"},
	"promise":    {"Promise"},
	"bignum":     {"BigInt"},
}

func applyIntrinsics(rt *goja.Runtime, set IntrinsicSet) {
	disabled := map[string]bool{
		"date":       !set.Date,
		"regexp":     !set.RegExp,
		"json":       !set.JSON,
		"proxy":      !set.Proxy,
		"mapset":     !set.MapSet,
		"typedarray": !set.TypedArray,
		"promise":    !set.Promise,
		"bignum":     !set.BigNum,
		// Function stays available even when eval is off; only the dynamic
		// evaluation entry point is withheld.
		"eval": !set.Eval,
	}
	global := rt.GlobalObject()
	for group, off := range disabled {
		if !off {
			continue
		}
		for _, name := range intrinsicGlobals[group] {
			_ = global.Delete(name)
		}
	}
}
