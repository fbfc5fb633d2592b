package responder

import "log/slog"

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
)

// ResponderOption follows the functional options pattern used by NewResponder.
type ResponderOption func(*Responder)

// Responder renders the JSON bodies of the info endpoints and the problem
// documents sent when the host is offline or not ready.
type Responder struct {
	log *slog.Logger
}

// NewResponder constructs a Responder logging to slog.Default unless
// overridden.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger injects the logger that records every emitted problem.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}
