package responder

import "github.com/oklog/ulid/v2"

// newTraceID returns a lexically sortable id correlating a problem document
// with its log record.
func newTraceID() string {
	return ulid.Make().String()
}
