// Package native is the capability surface through which the rest of the
// module consumes the JavaScript engine (goja). It mirrors the shape of a
// classic embedding C API: construction returns nil on failure, fallible
// calls return a sentinel status, and the concrete failure is parked in a
// per-context pending-exception slot for the caller to drain.
//
// Nothing outside this package touches goja's runtime directly; the public
// layer is responsible for serialization and scope tagging.
package native

import (
	"errors"
	"math"

	"github.com/dop251/goja"
)

// Raw is the engine's value handle type.
type Raw = goja.Value

// Undefined returns the engine's undefined value.
func Undefined() Raw { return goja.Undefined() }

// Null returns the engine's null value.
func Null() Raw { return goja.Null() }

// RawObject is the engine's object handle type.
type RawObject = *goja.Object

// Eval flag word, selecting how source text is compiled and run.
const (
	EvalTypeGlobal      = 0
	EvalTypeModule      = 1 << 0
	EvalFlagStrict      = 1 << 3
	EvalFlagCompileOnly = 1 << 5
)

// Engine is one interpreter domain. Contexts created from the same Engine
// must never be driven concurrently; the caller owns that discipline.
type Engine struct {
	contexts int
}

// NewEngine creates an engine instance. Returns nil only on allocation
// exhaustion, matching the consumed-capability contract.
func NewEngine() *Engine {
	return &Engine{}
}

// Context is one global scope plus call stack.
type Context struct {
	rt      *goja.Runtime
	pending goja.Value // pending-exception slot, drained by PendingException
	bigInt  goja.Value // saved BigInt constructor, restored when the extension is re-enabled
}

func (e *Engine) newContext(set IntrinsicSet) *Context {
	rt := goja.New()
	if rt == nil {
		return nil
	}
	bigInt := rt.GlobalObject().Get("BigInt")
	applyIntrinsics(rt, set)
	e.contexts++
	return &Context{rt: rt, bigInt: bigInt}
}

// NewContextFull creates a context with all standard intrinsics registered.
func (e *Engine) NewContextFull() *Context {
	return e.newContext(FullIntrinsics())
}

// NewContextRaw creates a context with only the base intrinsics.
func (e *Engine) NewContextRaw() *Context {
	return e.newContext(BaseIntrinsics())
}

// NewContextWith creates a context exposing exactly the given intrinsic set.
func (e *Engine) NewContextWith(set IntrinsicSet) *Context {
	return e.newContext(set)
}

// FreeContext releases a context's native resources. The context must not be
// used afterwards.
func (e *Engine) FreeContext(c *Context) {
	c.rt = nil
	c.pending = nil
	c.bigInt = nil
	e.contexts--
}

// Contexts reports the number of live contexts. Used for teardown sanity.
func (e *Engine) Contexts() int {
	return e.contexts
}

// goja bounds recursion by frame count rather than stack bytes; translate a
// byte budget using a conservative per-frame estimate.
const approxFrameBytes = 512

// SetMaxStackSize bounds the context's call depth to roughly the given byte
// budget. Zero restores the engine default (unbounded frames).
func (c *Context) SetMaxStackSize(bytes uint64) {
	if bytes == 0 {
		c.rt.SetMaxCallStackSize(math.MaxInt32)
		return
	}
	frames := int(bytes / approxFrameBytes)
	if frames < 1 {
		frames = 1
	}
	c.rt.SetMaxCallStackSize(frames)
}

// EnableBigNum toggles the big-number extension. When disabled the BigInt
// global is withheld from scripts.
func (c *Context) EnableBigNum(on bool) {
	if on {
		if c.bigInt != nil {
			_ = c.rt.GlobalObject().Set("BigInt", c.bigInt)
		}
		return
	}
	_ = c.rt.GlobalObject().Delete("BigInt")
}

// Throw parks v in the pending-exception slot.
func (c *Context) Throw(v goja.Value) {
	c.pending = v
}

// PendingException drains the pending-exception slot. The second return is
// false when no exception is pending.
func (c *Context) PendingException() (goja.Value, bool) {
	v := c.pending
	c.pending = nil
	return v, v != nil
}

// catch runs fn, trapping an engine throw into the pending slot. The engine
// panics with *goja.Exception from script frames but with the bare thrown
// value (a TypeError object, say) from host-side coercions; both forms are
// parked. Any other panic propagates untouched.
func (c *Context) catch(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case *goja.Exception:
				c.Throw(v.Value())
			case goja.Value:
				c.Throw(v)
			default:
				panic(r)
			}
			ok = false
		}
	}()
	fn()
	return true
}

// fail routes a goja error into the pending slot and returns false.
func (c *Context) fail(err error) bool {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		c.Throw(ex.Value())
	} else {
		c.Throw(c.newNamedError("Error", err.Error()))
	}
	return false
}

// failParse parks a compile failure as a SyntaxError.
func (c *Context) failParse(err error) bool {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		c.Throw(ex.Value())
	} else {
		c.Throw(c.newNamedError("SyntaxError", err.Error()))
	}
	return false
}

// Eval compiles and runs source as a global script. On failure the pending
// slot holds the thrown value and the status is false.
func (c *Context) Eval(src []byte, filename string, flags int) (goja.Value, bool) {
	source := string(src)
	if flags&EvalTypeModule != 0 {
		source = stripModuleSyntax(source)
	}
	strict := flags&EvalFlagStrict != 0
	prog, err := goja.Compile(filename, source, strict)
	if err != nil {
		return nil, c.failParse(err)
	}
	if flags&EvalFlagCompileOnly != 0 {
		return goja.Undefined(), true
	}
	v, err := c.rt.RunProgram(prog)
	if err != nil {
		return nil, c.fail(err)
	}
	if v == nil {
		v = goja.Undefined()
	}
	return v, true
}

// Module is a compiled, not yet evaluated, module record.
type Module struct {
	prog *goja.Program
	name string
}

// Name returns the module name the record was compiled under.
func (m *Module) Name() string {
	return m.name
}

// Compile parses source as a module without executing it. Parse failures are
// reported through the pending-exception slot like any other eval failure.
func (c *Context) Compile(src []byte, name string, flags int) (*Module, bool) {
	source := stripModuleSyntax(string(src))
	strict := flags&EvalFlagStrict != 0
	prog, err := goja.Compile(name, source, strict)
	if err != nil {
		return nil, c.failParse(err)
	}
	return &Module{prog: prog, name: name}, true
}

// ToString applies the engine's ToString algorithm.
func (c *Context) ToString(v goja.Value) (string, bool) {
	var s string
	ok := c.catch(func() {
		s = v.ToString().String()
	})
	return s, ok
}

// ToInt32 applies ToInt32 semantics: ToNumber followed by modular reduction
// into the signed 32-bit range.
func (c *Context) ToInt32(v goja.Value) (int32, bool) {
	f, ok := c.toNumber(v)
	if !ok {
		return 0, false
	}
	return toInt32(f), true
}

// ToInt64 applies ToInteger semantics clamped to the signed 64-bit range.
func (c *Context) ToInt64(v goja.Value) (int64, bool) {
	var n int64
	ok := c.catch(func() {
		n = v.ToInteger()
	})
	return n, ok
}

// ToIndex applies ToIndex semantics: negative or beyond 2^53-1 raises a
// RangeError through the pending slot.
func (c *Context) ToIndex(v goja.Value) (uint64, bool) {
	f, ok := c.toNumber(v)
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, true
	}
	if f < 0 || f > maxSafeInteger {
		c.Throw(c.newNamedError("RangeError", "invalid array index"))
		return 0, false
	}
	return uint64(f), true
}

// ToFloat64 applies ToNumber semantics.
func (c *Context) ToFloat64(v goja.Value) (float64, bool) {
	return c.toNumber(v)
}

// ToBool applies ToBoolean semantics. It cannot raise.
func (c *Context) ToBool(v goja.Value) (bool, bool) {
	return v.ToBoolean(), true
}

const maxSafeInteger = 1<<53 - 1

func (c *Context) toNumber(v goja.Value) (float64, bool) {
	var f float64
	ok := c.catch(func() {
		f = v.ToFloat()
	})
	return f, ok
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return int32(uint32(f))
}

// GetGlobalObject returns the context's global object.
func (c *Context) GetGlobalObject() *goja.Object {
	return c.rt.GlobalObject()
}

// GetPropertyStr reads a named property. A throwing getter routes through
// the pending slot.
func (c *Context) GetPropertyStr(obj *goja.Object, key string) (goja.Value, bool) {
	var v goja.Value
	ok := c.catch(func() {
		v = obj.Get(key)
	})
	if !ok {
		return nil, false
	}
	if v == nil {
		v = goja.Undefined()
	}
	return v, true
}

// GetPropertyIndex reads a numeric-index property.
func (c *Context) GetPropertyIndex(obj *goja.Object, idx uint32) (goja.Value, bool) {
	var v goja.Value
	ok := c.catch(func() {
		v = obj.Get(indexKey(idx))
	})
	if !ok {
		return nil, false
	}
	if v == nil {
		v = goja.Undefined()
	}
	return v, true
}

// SetPropertyStr writes a named property.
func (c *Context) SetPropertyStr(obj *goja.Object, key string, v goja.Value) bool {
	if err := obj.Set(key, v); err != nil {
		return c.fail(err)
	}
	return true
}

// DeletePropertyStr removes a named own property. Best effort: a failed
// delete of a non-configurable property is ignored.
func (c *Context) DeletePropertyStr(obj *goja.Object, key string) {
	_ = obj.Delete(key)
}

// Call invokes fn with the given receiver and arguments.
func (c *Context) Call(fn goja.Value, this goja.Value, args []goja.Value) (goja.Value, bool) {
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		c.Throw(c.rt.NewTypeError("value is not a function"))
		return nil, false
	}
	v, err := callable(this, args...)
	if err != nil {
		return nil, c.fail(err)
	}
	if v == nil {
		v = goja.Undefined()
	}
	return v, true
}

// NewFunc wraps a host callback as an engine function value. When the
// callback returns a non-nil exception object it is thrown inside the engine.
func (c *Context) NewFunc(fn func(args []goja.Value) (goja.Value, *goja.Object)) goja.Value {
	return c.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		res, exc := fn(call.Arguments)
		if exc != nil {
			panic(exc)
		}
		if res == nil {
			return goja.Undefined()
		}
		return res
	})
}

// NewError constructs a plain engine Error object. The engine stamps a stack
// trace on construction; it is removed so the host controls every field.
func (c *Context) NewError() *goja.Object {
	obj := c.newNamedError("Error", "")
	c.DeletePropertyStr(obj, "stack")
	c.DeletePropertyStr(obj, "message")
	return obj
}

// NewTypeErrorObj constructs a TypeError carrying message.
func (c *Context) NewTypeErrorObj(message string) *goja.Object {
	return c.rt.NewTypeError(message)
}

// NewInternalErrorObj constructs an InternalError-like object. The engine has
// no InternalError intrinsic, so a plain Error is renamed.
func (c *Context) NewInternalErrorObj(message string) *goja.Object {
	obj := c.newNamedError("Error", message)
	_ = obj.Set("name", "InternalError")
	return obj
}

// newNamedError builds an error instance through the named constructor,
// falling back to a bare object if the intrinsic is unavailable. The
// error-construction path must not itself fail.
func (c *Context) newNamedError(name, message string) *goja.Object {
	ctor := c.rt.GlobalObject().Get(name)
	if ctor != nil {
		var args []goja.Value
		if message != "" {
			args = append(args, c.rt.ToValue(message))
		}
		if obj, err := c.rt.New(ctor, args...); err == nil {
			return obj
		}
	}
	obj := c.rt.NewObject()
	if message != "" {
		_ = obj.Set("message", message)
	}
	return obj
}

// NewString builds an engine string value.
func (c *Context) NewString(s string) goja.Value {
	return c.rt.ToValue(s)
}

// NewBool builds an engine boolean value.
func (c *Context) NewBool(b bool) goja.Value {
	return c.rt.ToValue(b)
}

// NewInt builds an engine integer value.
func (c *Context) NewInt(n int64) goja.Value {
	return c.rt.ToValue(n)
}

// NewFloat builds an engine number value.
func (c *Context) NewFloat(f float64) goja.Value {
	return c.rt.ToValue(f)
}

// NewArray builds an engine array from already-converted elements.
func (c *Context) NewArray(items []goja.Value) *goja.Object {
	anys := make([]interface{}, len(items))
	for i, v := range items {
		anys[i] = v
	}
	return c.rt.NewArray(anys...)
}

// NewObject builds an empty engine object.
func (c *Context) NewObject() *goja.Object {
	return c.rt.NewObject()
}
