// Package info exposes connectivity and health endpoints backed by a probe
// race.
//
// GetConnectivity answers 200 {"status":"online"} or a 503 problem document,
// GetReadyz runs readiness checks (ConnectivityCheck among them) under a
// shared timeout, and GetStatus is a static liveness answer.
//
// See ExampleInfoHandler_full for a runnable wiring of the handler and probes.
package info
