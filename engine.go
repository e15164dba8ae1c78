package scriptbox

import (
	"log/slog"
	"sync"

	serrors "github.com/reglet-dev/scriptbox/errors"
	"github.com/reglet-dev/scriptbox/internal/native"
)

// Engine owns one instance of the native interpreter. All contexts descend
// from it, and its mutex is the single point of serialization: context
// creation, destruction, engine-wide configuration and every With invocation
// hold it for their full duration.
type Engine struct {
	mu     sync.Mutex
	inner  *native.Engine
	logger *slog.Logger
	closed bool
}

// New creates an engine instance with the given options.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultEngineOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	inner := native.NewEngine()
	if inner == nil {
		return nil, &serrors.AllocationError{}
	}

	e := &Engine{inner: inner, logger: cfg.logger}
	e.logger.Debug("engine created")
	return e, nil
}

// Close marks the engine as torn down. Contexts must be closed first; Close
// is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.logger.Debug("engine closed", "live_contexts", e.inner.Contexts())
	return nil
}
