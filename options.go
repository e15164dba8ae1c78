package scriptbox

import (
	"log/slog"

	sblog "github.com/reglet-dev/scriptbox/log"
)

// Option defines a functional option for configuring the Engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger *slog.Logger
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		logger: sblog.Nop(),
	}
}

// WithLogger routes engine and context lifecycle logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
