package connectivity

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/drblury/netcheck/catalog"
	"github.com/drblury/netcheck/probe"
)

// Option follows the functional options pattern used by NewChecker.
type Option func(*Checker)

// Checker runs probes and races probe sets. A Checker holds no state between
// calls and is safe for concurrent use.
type Checker struct {
	log *slog.Logger
}

// NewChecker constructs a Checker logging to slog.Default unless overridden.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// WithLogger injects the logger used for race diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.log = logger
		}
	}
}

func (c *Checker) logger() *slog.Logger {
	if c == nil || c.log == nil {
		return slog.Default()
	}
	return c.log
}

// Check executes a single probe.
func (c *Checker) Check(ctx context.Context, p probe.Probe) bool {
	return p.Execute(contextOrBackground(ctx))
}

type outcome struct {
	probe probe.Probe
	ok    bool
}

// Race executes every probe in set concurrently and reports whether any of
// them succeeded. An empty set is false without touching the network and a
// single probe is executed inline.
//
// The first success cancels the shared context of the remaining probes and
// returns at once; their results are discarded. Which probe wins when several
// succeed together is unspecified.
func (c *Checker) Race(ctx context.Context, set probe.Set) bool {
	probes := set.Probes()
	switch len(probes) {
	case 0:
		return false
	case 1:
		return c.Check(ctx, probes[0])
	}

	raceID := ulid.Make().String()
	logger := c.logger().With("raceId", raceID)
	started := time.Now()

	raceCtx, cancel := context.WithCancel(contextOrBackground(ctx))
	defer cancel()

	// Buffered so losers can report after Race has returned.
	results := make(chan outcome, len(probes))
	for _, p := range probes {
		go func(p probe.Probe) {
			results <- outcome{probe: p, ok: p.Execute(raceCtx)}
		}(p)
	}

	for pending := len(probes); pending > 0; pending-- {
		res := <-results
		if res.ok {
			cancel()
			logger.Debug("connectivity confirmed",
				"winner", res.probe.String(),
				"pending", pending-1,
				"elapsed", time.Since(started))
			return true
		}
	}

	logger.Debug("all probes failed", "probes", len(probes), "elapsed", time.Since(started))
	return false
}

var defaultChecker = &Checker{}

// CheckConnectivity races set with a default Checker.
func CheckConnectivity(ctx context.Context, set probe.Set) bool {
	return defaultChecker.Race(ctx, set)
}

// CheckProbe executes p with a default Checker.
func CheckProbe(ctx context.Context, p probe.Probe) bool {
	return defaultChecker.Check(ctx, p)
}

// CheckDefault races catalog.Default. opts are applied to every probe.
func CheckDefault(ctx context.Context, opts ...probe.Option) bool {
	return defaultChecker.Race(ctx, catalog.Default(opts...))
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
