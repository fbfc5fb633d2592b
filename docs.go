// Package netcheck decides whether a host has usable internet access by
// issuing real HTTP requests to well-known connectivity endpoints. Interface
// state cannot see captive portals or filtered networks; a 204 from
// generate_204 can.
//
// The connectivity package is the engine: it races a set of probes, returns
// true on the first accepted response, and cancels the rest. Everything else
// feeds it probe definitions or exposes its answer.
//
// # Packages
//
//   - probe: one connectivity check (request, transport settings, validator)
//     and Set, which deduplicates probes by what they request.
//   - connectivity: Check, Race, and the package-level CheckConnectivity and
//     CheckDefault helpers.
//   - catalog: seven built-in endpoints plus the Default and All sets.
//   - config: YAML/JSON probe files turned into probe sets.
//   - info: HTTP handlers reporting connectivity and readiness.
//   - responder: JSON and problem-document rendering with ULID trace ids.
//   - jsonutil: sonic wrappers shared by config and responder.
//
// # Quick Start
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	if connectivity.CheckDefault(ctx) {
//	    fmt.Println("online")
//	}
//
// Custom endpoints loaded at runtime go through probe.Parse, which returns
// ok=false instead of panicking:
//
//	p, ok := probe.Parse(userURL, probe.Expect204())
//	if ok {
//	    online = connectivity.CheckConnectivity(ctx, probe.NewSet(p))
//	}
package netcheck
