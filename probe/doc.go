// Package probe describes a single internet connectivity check: an HTTP
// request, the transport settings used to issue it, and a Validator deciding
// whether the response proves the host is online. See ExampleMustParse,
// ExampleParse, and ExampleSet for quick-start patterns.
package probe
