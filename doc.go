// Package scriptbox provides a safe embedding layer for a single-threaded,
// non-reentrant JavaScript engine.
//
// The main entry point is the [Engine], which represents one interpreter
// domain and is used to create [Context] objects. As the underlying engine
// does not support threading, every operation against an Engine is locked
// behind a mutex: multiple goroutines cannot run scripts or create values
// from the same Engine at the same time.
//
// A [Context] represents a global environment and a call stack. Values are
// only reachable through [Context.With], which yields a [Ctx] access token
// valid for exactly the duration of the closure. Every [Value], [Atom] and
// [Module] is tagged with the token's scope; retaining one past the closure
// or smuggling it into another invocation is rejected with a panic before
// any engine call runs.
//
// Converting values across the boundary goes through [Ctx.ToValue] and
// [Ctx.FromValue] (or the generic [As]), with the [IntoJs], [FromJs] and
// [IntoJsArgs] interfaces available for custom host types. Engine-thrown
// exceptions surface as typed errors from the errors package, never as raw
// sentinels.
package scriptbox
