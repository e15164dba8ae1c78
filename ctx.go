package scriptbox

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	serrors "github.com/reglet-dev/scriptbox/errors"
	"github.com/reglet-dev/scriptbox/internal/native"
)

// scope is the invocation marker every Value, Atom and Module is tagged
// with. It is unique per With invocation and invalidated when the closure
// returns; tag checks run before any native call.
type scope struct {
	ctx  *Ctx
	live bool
}

func (s *scope) ensure(op string) {
	if s == nil {
		panic("scriptbox: " + op + " on a zero value")
	}
	if !s.live {
		panic("scriptbox: " + op + " after the With invocation that created it returned")
	}
}

func (s *scope) ensureSame(other *scope, op string) {
	s.ensure(op)
	if other != s {
		panic("scriptbox: " + op + " with a value from a different With invocation")
	}
}

// Ctx is a context in use, passed to Context.With. It authorizes value
// creation, conversion, property access and evaluation for exactly the
// duration of the closure invocation that received it.
type Ctx struct {
	context *Context
	inner   *native.Context
	scope   *scope
	log     *slog.Logger
}

// wrap tags a native handle with this invocation's scope.
func (x *Ctx) wrap(raw native.Raw) Value {
	return Value{scope: x.scope, kind: classify(raw), raw: raw}
}

// check rejects values that belong to another invocation or outlived theirs.
func (x *Ctx) check(v Value, op string) {
	x.scope.ensure(op)
	if v.scope != x.scope {
		panic("scriptbox: " + op + " with a value from a different With invocation")
	}
}

// exception drains the context's pending-exception slot into a typed error.
// Called after every native sentinel failure; if the native layer
// under-reported and left the slot empty, the result is Unknown.
func (x *Ctx) exception() error {
	raw, ok := x.inner.PendingException()
	if !ok {
		return &serrors.UnknownError{}
	}
	ex, err := x.errorFromRaw(raw)
	if err != nil {
		// Thrown value is not error-like; fall back to stringification.
		msg, sok := x.inner.ToString(raw)
		if !sok {
			// A failed ToString parks its own exception; drain it so it
			// cannot surface from a later unrelated failure.
			x.inner.PendingException()
			msg = ""
		}
		return &serrors.ExceptionError{Message: msg, Line: -1}
	}
	return ex
}

// Eval compiles and runs source as a strict global script. Any thrown
// exception is surfaced as an ExceptionError.
func (x *Ctx) Eval(source string) (Value, error) {
	x.scope.ensure("Eval")
	if strings.ContainsRune(source, 0) {
		return Value{}, &serrors.InvalidStringError{Input: source}
	}
	x.log.Debug("eval", "bytes", len(source))
	raw, ok := x.inner.Eval([]byte(source), "eval_script", native.EvalTypeGlobal|native.EvalFlagStrict)
	if !ok {
		return Value{}, x.exception()
	}
	return x.wrap(raw), nil
}

// EvalAs evaluates source and converts the result to T.
func EvalAs[T any](x *Ctx, source string) (T, error) {
	var zero T
	v, err := x.Eval(source)
	if err != nil {
		return zero, err
	}
	return As[T](x, v)
}

// Compile compiles source as a module for later use without executing it.
func (x *Ctx) Compile(source, name string) (Module, error) {
	x.scope.ensure("Compile")
	if strings.ContainsRune(source, 0) {
		return Module{}, &serrors.InvalidStringError{Input: source}
	}
	if strings.ContainsRune(name, 0) {
		return Module{}, &serrors.InvalidStringError{Input: name}
	}
	mod, ok := x.inner.Compile([]byte(source), name, native.EvalTypeModule|native.EvalFlagStrict|native.EvalFlagCompileOnly)
	if !ok {
		return Module{}, x.exception()
	}
	return Module{scope: x.scope, inner: mod}, nil
}

// CoerceString applies the engine's ToString algorithm to v.
func (x *Ctx) CoerceString(v Value) (string, error) {
	x.check(v, "CoerceString")
	s, ok := x.inner.ToString(v.raw)
	if !ok {
		return "", x.exception()
	}
	if !utf8.ValidString(s) {
		return "", &serrors.UTF8Error{Input: s}
	}
	return s, nil
}

// CoerceI32 applies the engine's ToInt32 algorithm to v.
func (x *Ctx) CoerceI32(v Value) (int32, error) {
	x.check(v, "CoerceI32")
	n, ok := x.inner.ToInt32(v.raw)
	if !ok {
		return 0, x.exception()
	}
	return n, nil
}

// CoerceI64 applies the engine's ToInt64 algorithm to v.
func (x *Ctx) CoerceI64(v Value) (int64, error) {
	x.check(v, "CoerceI64")
	n, ok := x.inner.ToInt64(v.raw)
	if !ok {
		return 0, x.exception()
	}
	return n, nil
}

// CoerceU64 applies the engine's ToIndex algorithm to v.
func (x *Ctx) CoerceU64(v Value) (uint64, error) {
	x.check(v, "CoerceU64")
	n, ok := x.inner.ToIndex(v.raw)
	if !ok {
		return 0, x.exception()
	}
	return n, nil
}

// CoerceF64 applies the engine's ToNumber algorithm to v.
func (x *Ctx) CoerceF64(v Value) (float64, error) {
	x.check(v, "CoerceF64")
	f, ok := x.inner.ToFloat64(v.raw)
	if !ok {
		return 0, x.exception()
	}
	return f, nil
}

// CoerceBool applies the engine's ToBoolean algorithm to v.
func (x *Ctx) CoerceBool(v Value) (bool, error) {
	x.check(v, "CoerceBool")
	b, ok := x.inner.ToBool(v.raw)
	if !ok {
		return false, x.exception()
	}
	return b, nil
}

// Globals returns the context's global object, scoped like any other value.
func (x *Ctx) Globals() Object {
	x.scope.ensure("Globals")
	raw := x.inner.GetGlobalObject()
	return Object{v: x.wrap(raw)}
}
