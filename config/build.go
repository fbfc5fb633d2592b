package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/drblury/netcheck/catalog"
	"github.com/drblury/netcheck/probe"
)

// ErrNoProbes is returned when a file resolves to an empty probe set.
var ErrNoProbes = errors.New("configuration yields no probes")

// Skipped records a custom probe that could not be built.
type Skipped struct {
	Name   string
	URL    string
	Reason string
}

// Result is the outcome of Build.
type Result struct {
	Set     probe.Set
	Skipped []Skipped
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	logger       *slog.Logger
	probeOptions []probe.Option
	store        probe.ResponseStore
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(cfg *buildConfig) {
		cfg.logger = logger
	}
}

// WithProbeOptions forwards options, such as an HTTP client, to every probe.
// They run after the Build logger, so a probe.WithLogger here wins. The
// transport and method derived from the file run after them, so
// probe.WithTransportConfig and probe.WithMethod passed here have no effect.
func WithProbeOptions(opts ...probe.Option) BuildOption {
	return func(cfg *buildConfig) {
		cfg.probeOptions = append(cfg.probeOptions, opts...)
	}
}

// WithResponseStore shares store between probes that use a caching mode.
// Without it Build creates an in-memory store.
func WithResponseStore(store probe.ResponseStore) BuildOption {
	return func(cfg *buildConfig) {
		cfg.store = store
	}
}

// Build turns a File into a probe set. Malformed file-level settings are an
// error; a malformed entry is skipped, logged, and listed in Result.Skipped.
func Build(f File, opts ...BuildOption) (Result, error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.store == nil {
		cfg.store = probe.NewMemoryStore()
	}

	base, err := resolveTransport(probe.DefaultTransportConfig(), f.Timeout, f.Cache, f.AllowMetered, cfg.store)
	if err != nil {
		return Result{}, fmt.Errorf("build config: %w", err)
	}

	baseOpts := cfg.withProbeOptions(probe.WithTransportConfig(base))
	var set probe.Set
	switch f.Base {
	case "", BaseDefault:
		set = catalog.Default(baseOpts...)
	case BaseAll:
		set = catalog.All(baseOpts...)
	case BaseNone:
	default:
		return Result{}, fmt.Errorf("build config: unknown base set %q", f.Base)
	}

	res := Result{}
	for i, entry := range f.Probes {
		p, err := buildEntry(entry, base, cfg)
		if err != nil {
			name := entry.Name
			if name == "" {
				name = fmt.Sprintf("probe %d", i+1)
			}
			cfg.logger.Warn("skipping probe", "name", name, "url", entry.URL, "error", err)
			res.Skipped = append(res.Skipped, Skipped{Name: name, URL: entry.URL, Reason: err.Error()})
			continue
		}
		if !set.Add(p) {
			cfg.logger.Debug("duplicate probe ignored", "name", entry.Name, "url", entry.URL)
		}
	}

	if set.Len() == 0 {
		return res, ErrNoProbes
	}
	res.Set = set
	return res, nil
}

// withProbeOptions orders probe options as: Build logger, caller options, then
// the settings resolved from the file.
func (cfg *buildConfig) withProbeOptions(fileOpts ...probe.Option) []probe.Option {
	opts := make([]probe.Option, 0, 1+len(cfg.probeOptions)+len(fileOpts))
	opts = append(opts, probe.WithLogger(cfg.logger))
	opts = append(opts, cfg.probeOptions...)
	return append(opts, fileOpts...)
}

func buildEntry(entry Entry, base probe.TransportConfig, cfg *buildConfig) (probe.Probe, error) {
	transport, err := resolveTransport(base, entry.Timeout, entry.Cache, entry.AllowMetered, cfg.store)
	if err != nil {
		return probe.Probe{}, err
	}

	opts := cfg.withProbeOptions(probe.WithTransportConfig(transport), probe.WithMethod(entry.Method))
	p, ok := probe.Parse(entry.URL, probe.AllowedStatuses(entry.ExpectStatus...), opts...)
	if !ok {
		return probe.Probe{}, fmt.Errorf("invalid url %q", entry.URL)
	}
	return p, nil
}

func resolveTransport(base probe.TransportConfig, timeout, cache string, allowMetered *bool, store probe.ResponseStore) (probe.TransportConfig, error) {
	out := base

	if t := strings.TrimSpace(timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return out, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		if d < 0 {
			return out, fmt.Errorf("invalid timeout %q: must not be negative", timeout)
		}
		out = out.WithTimeout(d)
	}

	if c := strings.TrimSpace(cache); c != "" {
		mode, err := probe.ParseCacheMode(strings.ToLower(c))
		if err != nil {
			return out, err
		}
		if mode == probe.CacheIgnore {
			out = out.WithCachePolicy(probe.IgnoreCache())
		} else {
			out = out.WithCachePolicy(probe.UseCache(mode, store))
		}
	}

	if allowMetered != nil {
		out = out.WithMeteredAccess(*allowMetered)
	}
	return out, nil
}
