// Package connectivity answers "is this host online?" by racing probes.
//
// Race starts every probe of a set at once and returns true as soon as one of
// them accepts its response, cancelling the others. It returns false only
// after every probe has failed. There is no overall deadline: each probe is
// bounded by its own transport timeout, and callers needing a global limit pass
// a context with a deadline.
//
//	online := connectivity.CheckDefault(ctx)
//
// See ExampleChecker_Race for a runnable wiring against local servers.
package connectivity
