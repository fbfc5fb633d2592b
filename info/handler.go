package info

import (
	"context"
	"time"

	"github.com/drblury/netcheck/catalog"
	"github.com/drblury/netcheck/connectivity"
	"github.com/drblury/netcheck/probe"
	"github.com/drblury/netcheck/responder"
)

// InfoOption follows the functional options pattern used by NewInfoHandler.
type InfoOption func(*InfoHandler)

const defaultProbeTimeout = 5 * time.Second

// ProbeFunc is executed to determine the outcome of readiness probes.
// Returning a non-nil error marks the probe as failed.
type ProbeFunc func(ctx context.Context) error

// InfoHandler serves connectivity and readiness endpoints.
type InfoHandler struct {
	*responder.Responder
	checker         *connectivity.Checker
	probes          probe.Set
	probeTimeout    time.Duration
	readinessChecks []ProbeFunc
}

// NewInfoHandler constructs an InfoHandler racing catalog.Default unless
// WithProbeSet says otherwise.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder:    responder.NewResponder(),
		checker:      connectivity.NewChecker(),
		probes:       catalog.Default(),
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder replaces the responder used to craft JSON responses.
func WithInfoResponder(responder *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if responder != nil {
			ih.Responder = responder
		}
	}
}

// WithChecker replaces the connectivity checker.
func WithChecker(checker *connectivity.Checker) InfoOption {
	return func(ih *InfoHandler) {
		if checker != nil {
			ih.checker = checker
		}
	}
}

// WithProbeSet sets the probes raced by GetConnectivity.
func WithProbeSet(set probe.Set) InfoOption {
	return func(ih *InfoHandler) {
		ih.probes = set
	}
}

// WithProbeTimeout bounds every connectivity race and readiness run.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithReadinessChecks replaces the readiness checks with the supplied
// functions.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readinessChecks = filterProbes(checks)
	}
}
