package probe

import "net/http"

// Validator decides whether a response proves connectivity. Implementations
// must not retain or mutate shared state: a Validator is invoked from every
// goroutine that executes the probe.
type Validator func(req Request, resp *http.Response, body []byte) bool

// HTTPStatusExpectation determines whether a given HTTP status code is acceptable.
type HTTPStatusExpectation func(status int) bool

// ExpectStatus accepts responses carrying exactly the supplied status code.
func ExpectStatus(code int) Validator {
	return func(_ Request, resp *http.Response, _ []byte) bool {
		return resp != nil && resp.StatusCode == code
	}
}

// Expect200 accepts plain success pages such as captive.apple.com.
func Expect200() Validator {
	return ExpectStatus(http.StatusOK)
}

// Expect204 accepts the empty-body quick checks served by generate_204
// style endpoints.
func Expect204() Validator {
	return ExpectStatus(http.StatusNoContent)
}

// AllowedStatuses accepts any of the given status codes. With no codes it
// accepts the whole 2xx range.
func AllowedStatuses(statuses ...int) Validator {
	allowed := make(map[int]struct{}, len(statuses))
	for _, status := range statuses {
		allowed[status] = struct{}{}
	}
	return FromStatusExpectation(func(status int) bool {
		if len(allowed) == 0 {
			return defaultHTTPStatusExpectation(status)
		}
		_, ok := allowed[status]
		return ok
	})
}

// FromStatusExpectation lifts a status-only check into a Validator.
func FromStatusExpectation(expect HTTPStatusExpectation) Validator {
	if expect == nil {
		expect = defaultHTTPStatusExpectation
	}
	return func(_ Request, resp *http.Response, _ []byte) bool {
		return resp != nil && expect(resp.StatusCode)
	}
}
