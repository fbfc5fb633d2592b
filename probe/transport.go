package probe

import (
	"fmt"
	"time"
)

// DefaultTimeout is the per-request timeout applied by DefaultTransportConfig.
const DefaultTimeout = 3 * time.Second

// CacheMode selects how a probe treats cached responses.
type CacheMode int

const (
	// CacheIgnore always goes to the network and asks intermediaries not to
	// answer from their caches.
	CacheIgnore CacheMode = iota
	// CacheUseProtocol issues the request with plain HTTP caching semantics and
	// records responses its Validator accepted in the configured ResponseStore.
	CacheUseProtocol
	// CacheReturnElseLoad answers from the ResponseStore when it holds a
	// response for the same Request and only loads from the network otherwise.
	CacheReturnElseLoad
)

func (m CacheMode) String() string {
	switch m {
	case CacheIgnore:
		return "ignore"
	case CacheUseProtocol:
		return "protocol"
	case CacheReturnElseLoad:
		return "return-else-load"
	default:
		return fmt.Sprintf("CacheMode(%d)", int(m))
	}
}

// ParseCacheMode maps the textual form produced by CacheMode.String back to a
// CacheMode. The empty string selects CacheIgnore.
func ParseCacheMode(s string) (CacheMode, error) {
	switch s {
	case "", "ignore":
		return CacheIgnore, nil
	case "protocol":
		return CacheUseProtocol, nil
	case "return-else-load":
		return CacheReturnElseLoad, nil
	}
	return CacheIgnore, fmt.Errorf("unknown cache mode %q", s)
}

// CachePolicy pairs a CacheMode with an optional store shared between probes.
type CachePolicy struct {
	Mode  CacheMode
	Store ResponseStore
}

// IgnoreCache returns the policy used by DefaultTransportConfig.
func IgnoreCache() CachePolicy {
	return CachePolicy{Mode: CacheIgnore}
}

// UseCache returns a policy that honours cached data. store may be nil, in
// which case nothing is recorded or replayed locally.
func UseCache(mode CacheMode, store ResponseStore) CachePolicy {
	return CachePolicy{Mode: mode, Store: store}
}

// TransportConfig controls how a probe's request is issued. Values are
// immutable; the With methods return modified copies.
type TransportConfig struct {
	// Timeout bounds a single round trip. Zero leaves the deadline to the
	// HTTP client.
	Timeout             time.Duration
	CachePolicy         CachePolicy
	AllowsMeteredAccess bool
}

// DefaultTransportConfig returns a 3 second timeout, no caching, and metered
// networks allowed.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:             DefaultTimeout,
		CachePolicy:         IgnoreCache(),
		AllowsMeteredAccess: true,
	}
}

// WithTimeout returns a copy using the supplied timeout. Negative values are
// treated as zero.
func (c TransportConfig) WithTimeout(timeout time.Duration) TransportConfig {
	if timeout < 0 {
		timeout = 0
	}
	c.Timeout = timeout
	return c
}

// WithCachePolicy returns a copy using the supplied cache policy.
func (c TransportConfig) WithCachePolicy(policy CachePolicy) TransportConfig {
	c.CachePolicy = policy
	return c
}

// WithMeteredAccess returns a copy with metered access toggled.
func (c TransportConfig) WithMeteredAccess(allowed bool) TransportConfig {
	c.AllowsMeteredAccess = allowed
	return c
}

// Request is the fully resolved description of what a probe asks for. It is
// comparable and acts as the probe's identity.
type Request struct {
	Method              string
	URL                 string
	Timeout             time.Duration
	Cache               CacheMode
	AllowsMeteredAccess bool
}

func (c TransportConfig) apply(req Request) Request {
	req.Timeout = c.Timeout
	req.Cache = c.CachePolicy.Mode
	req.AllowsMeteredAccess = c.AllowsMeteredAccess
	return req
}
