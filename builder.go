package scriptbox

import (
	"github.com/reglet-dev/scriptbox/config"
	serrors "github.com/reglet-dev/scriptbox/errors"
	"github.com/reglet-dev/scriptbox/internal/native"
)

// ContextBuilder configures a context with a specific set of intrinsic
// groups. Obtained from Build; all groups start disabled.
type ContextBuilder struct {
	eng          *Engine
	set          native.IntrinsicSet
	maxStackSize uint64
}

// Build returns a builder for creating a context with a specific set of
// intrinsics.
func Build(e *Engine) *ContextBuilder {
	return &ContextBuilder{eng: e, set: native.BaseIntrinsics()}
}

// Date enables the date intrinsics.
func (b *ContextBuilder) Date(on bool) *ContextBuilder {
	b.set.Date = on
	return b
}

// RegExp enables the regular expression intrinsics.
func (b *ContextBuilder) RegExp(on bool) *ContextBuilder {
	b.set.RegExp = on
	return b
}

// JSON enables the JSON intrinsics.
func (b *ContextBuilder) JSON(on bool) *ContextBuilder {
	b.set.JSON = on
	return b
}

// Proxy enables the proxy and reflection intrinsics.
func (b *ContextBuilder) Proxy(on bool) *ContextBuilder {
	b.set.Proxy = on
	return b
}

// MapSet enables the map, set and weak collection intrinsics.
func (b *ContextBuilder) MapSet(on bool) *ContextBuilder {
	b.set.MapSet = on
	return b
}

// TypedArrays enables the typed array and array buffer intrinsics.
func (b *ContextBuilder) TypedArrays(on bool) *ContextBuilder {
	b.set.TypedArray = on
	return b
}

// Eval enables dynamic evaluation from inside scripts.
func (b *ContextBuilder) Eval(on bool) *ContextBuilder {
	b.set.Eval = on
	return b
}

// Promise enables the promise intrinsics.
func (b *ContextBuilder) Promise(on bool) *ContextBuilder {
	b.set.Promise = on
	return b
}

// BigNum enables the big-number extension.
func (b *ContextBuilder) BigNum(on bool) *ContextBuilder {
	b.set.BigNum = on
	return b
}

// MaxStackSize bounds the context's recursion depth, in stack bytes.
func (b *ContextBuilder) MaxStackSize(bytes uint64) *ContextBuilder {
	b.maxStackSize = bytes
	return b
}

// FromProfile applies a validated configuration profile to the builder.
func (b *ContextBuilder) FromProfile(p *config.Profile) *ContextBuilder {
	switch p.Intrinsics.Preset {
	case "base":
		b.set = native.BaseIntrinsics()
	case "custom":
		b.set = native.IntrinsicSet{
			Date:       p.Intrinsics.Date,
			RegExp:     p.Intrinsics.RegExp,
			JSON:       p.Intrinsics.JSON,
			Proxy:      p.Intrinsics.Proxy,
			MapSet:     p.Intrinsics.MapSet,
			TypedArray: p.Intrinsics.TypedArrays,
			Eval:       p.Intrinsics.Eval,
			Promise:    p.Intrinsics.Promise,
		}
	default: // "full" and the zero value
		b.set = native.FullIntrinsics()
	}
	b.set.BigNum = p.BigNum
	b.maxStackSize = p.MaxStackSize
	return b
}

// Build creates the context under the engine gate.
func (b *ContextBuilder) Build() (*Context, error) {
	b.eng.mu.Lock()
	defer b.eng.mu.Unlock()
	inner := b.eng.inner.NewContextWith(b.set)
	if inner == nil {
		return nil, &serrors.AllocationError{}
	}
	if b.maxStackSize > 0 {
		inner.SetMaxStackSize(b.maxStackSize)
	}
	inner.EnableBigNum(b.set.BigNum)
	b.eng.logger.Debug("context created", "mode", "build")
	return &Context{eng: b.eng, inner: inner}, nil
}
