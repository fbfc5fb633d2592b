package probe

import (
	"log/slog"
	"net/http"
	"strings"
)

// HTTPRequestMutator allows callers to tweak the outbound request prior to dispatch.
type HTTPRequestMutator func(req *http.Request) error

// Option configures the behaviour of New, Parse and MustParse.
type Option func(*probeConfig)

type probeConfig struct {
	client          HTTPDoer
	transport       TransportConfig
	transportSet    bool
	method          string
	requestMutators []HTTPRequestMutator
	metered         func() bool
	logger          *slog.Logger
}

func buildProbeConfig(opts ...Option) *probeConfig {
	cfg := &probeConfig{
		transport: DefaultTransportConfig(),
		method:    http.MethodGet,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	return cfg
}

// WithHTTPClient overrides the HTTP client used for the probe.
func WithHTTPClient(client HTTPDoer) Option {
	return func(cfg *probeConfig) {
		cfg.client = client
	}
}

// WithTransportConfig replaces the transport settings. For New it also
// overrides the timeout, cache mode, and metered flag of the supplied Request.
func WithTransportConfig(transport TransportConfig) Option {
	return func(cfg *probeConfig) {
		cfg.transport = transport
		cfg.transportSet = true
	}
}

// WithMethod sets the HTTP method used by Parse and MustParse. New takes the
// method from its Request instead.
func WithMethod(method string) Option {
	return func(cfg *probeConfig) {
		verb := strings.ToUpper(strings.TrimSpace(method))
		if verb != "" {
			cfg.method = verb
		}
	}
}

// WithRequestMutator registers a mutator that runs before the request is
// dispatched. Mutators are not part of a probe's identity.
func WithRequestMutator(mutator HTTPRequestMutator) Option {
	return func(cfg *probeConfig) {
		cfg.requestMutators = append(cfg.requestMutators, mutator)
	}
}

// WithMeteredNetwork installs a detector reporting whether the current network
// is metered. Probes that disallow metered access skip the round trip and
// fail when it returns true. Without a detector every network is unmetered.
func WithMeteredNetwork(detect func() bool) Option {
	return func(cfg *probeConfig) {
		cfg.metered = detect
	}
}

// WithLogger sets the logger used for debug output about failed probes.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *probeConfig) {
		cfg.logger = logger
	}
}
