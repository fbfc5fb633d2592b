package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

var (
	errNilValidator   = errors.New("validator is nil")
	errMeteredNetwork = errors.New("metered network access is not allowed")
	errNotHTTP        = errors.New("response is not a valid HTTP response")
)

// HTTPDoer represents the subset of *http.Client required to execute a probe.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Probe is one configured connectivity check. Probes are immutable values and
// safe to execute from several goroutines at once.
//
// Two probes are equal when their Requests are equal. The Validator is not
// part of the identity, so a Set silently keeps only one of two probes that
// hit the same URL with different acceptance rules.
type Probe struct {
	req      Request
	validate Validator
	client   HTTPDoer
	store    ResponseStore
	mutators []HTTPRequestMutator
	metered  func() bool
	logger   *slog.Logger
}

// New builds a probe from an already resolved Request. It never fails; the
// URL is assumed to be well formed. An empty method defaults to GET.
func New(req Request, validate Validator, opts ...Option) Probe {
	cfg := buildProbeConfig(opts...)
	if cfg.transportSet {
		req = cfg.transport.apply(req)
	}
	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	return newProbe(req, validate, cfg)
}

// MustParse builds a probe for a hardcoded, reviewed URL literal and panics if
// the literal is not a valid http or https address.
func MustParse(rawURL string, validate Validator, opts ...Option) Probe {
	p, err := parse(rawURL, validate, opts...)
	if err != nil {
		panic(fmt.Sprintf("probe: %v", err))
	}
	return p
}

// Parse builds a probe for a URL supplied at runtime. ok is false when the URL
// is not a valid http or https address.
func Parse(rawURL string, validate Validator, opts ...Option) (p Probe, ok bool) {
	p, err := parse(rawURL, validate, opts...)
	if err != nil {
		return Probe{}, false
	}
	return p, true
}

func parse(rawURL string, validate Validator, opts ...Option) (Probe, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return Probe{}, err
	}
	cfg := buildProbeConfig(opts...)
	req := cfg.transport.apply(Request{Method: cfg.method, URL: target})
	return newProbe(req, validate, cfg), nil
}

// ValidateURL trims rawURL and checks that it is an absolute http or https
// address with a host. It returns the normalised string.
func ValidateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", errors.New("target URL is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid target URL %q: %w", trimmed, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("invalid target URL %q: scheme must be http or https", trimmed)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid target URL %q: host is required", trimmed)
	}
	return parsed.String(), nil
}

func newProbe(req Request, validate Validator, cfg *probeConfig) Probe {
	mutators := make([]HTTPRequestMutator, len(cfg.requestMutators))
	copy(mutators, cfg.requestMutators)
	return Probe{
		req:      req,
		validate: validate,
		client:   cfg.client,
		store:    cfg.transport.CachePolicy.Store,
		mutators: mutators,
		metered:  cfg.metered,
		logger:   cfg.logger,
	}
}

// Request returns the resolved request descriptor.
func (p Probe) Request() Request {
	return p.req
}

// Key returns the value probes are deduplicated by.
func (p Probe) Key() Request {
	return p.req
}

// Equal reports whether both probes request the same thing. Validators are
// ignored.
func (p Probe) Equal(other Probe) bool {
	return p.req == other.req
}

func (p Probe) String() string {
	return p.req.Method + " " + p.req.URL
}

// Execute performs the round trip and applies the Validator. Every failure,
// including timeouts, cancellation of ctx, and a panicking Validator, is
// reported as false.
func (p Probe) Execute(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log().Debug("probe panicked", "url", p.req.URL, "method", p.req.Method, "panic", r)
			ok = false
		}
	}()

	ok, err := p.execute(ctx)
	if err != nil {
		p.log().Debug("probe failed", "url", p.req.URL, "method", p.req.Method, "error", err)
	}
	return ok
}

func (p Probe) execute(ctx context.Context) (bool, error) {
	if p.validate == nil {
		return false, errNilValidator
	}
	if !p.req.AllowsMeteredAccess && p.metered != nil && p.metered() {
		return false, errMeteredNetwork
	}

	ctx = contextOrBackground(ctx)
	if p.req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.req.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, p.req.Method, p.req.URL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	if p.req.Cache == CacheIgnore {
		httpReq.Header.Set("Cache-Control", "no-cache")
		httpReq.Header.Set("Pragma", "no-cache")
	}
	for _, mutate := range p.mutators {
		if mutate == nil {
			continue
		}
		if err := mutate(httpReq); err != nil {
			return false, fmt.Errorf("request mutation failed: %w", err)
		}
	}

	if p.req.Cache == CacheReturnElseLoad && p.store != nil {
		if cached, found := p.store.Load(p.req); found {
			return p.judge(cached.response(httpReq), cached.Body)
		}
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	if resp == nil {
		return false, errNotHTTP
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}
	if resp.StatusCode <= 0 {
		return false, errNotHTTP
	}

	var body []byte
	if resp.Body != nil {
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return false, fmt.Errorf("failed to read response body: %w", err)
		}
	}

	accepted, err := p.judge(resp, body)
	// Only accepted responses are kept; a rejected one would otherwise be
	// replayed by CacheReturnElseLoad after the network recovers.
	if accepted && p.req.Cache != CacheIgnore && p.store != nil {
		p.store.Store(p.req, CachedResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: body})
	}
	return accepted, err
}

func (p Probe) judge(resp *http.Response, body []byte) (bool, error) {
	if !p.validate(p.req, resp, body) {
		return false, fmt.Errorf("response rejected: status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return true, nil
}

func (p Probe) log() *slog.Logger {
	return loggerOrDefault(p.logger)
}
