// Package responder renders JSON bodies and RFC 9457 problem documents for the
// info handlers, tagging every problem with a ULID trace id that also appears
// in the log record.
package responder
