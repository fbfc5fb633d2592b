package probe

import (
	"net/http"
	"sync"
)

// CachedResponse is the part of a round trip a ResponseStore keeps.
type CachedResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ResponseStore keeps responses keyed by the Request that produced them.
// Implementations must be safe for concurrent use.
type ResponseStore interface {
	Load(req Request) (CachedResponse, bool)
	Store(req Request, resp CachedResponse)
}

// MemoryStore is an in-process ResponseStore.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Request]CachedResponse
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Request]CachedResponse)}
}

// Load returns a copy of the stored response for req.
func (s *MemoryStore) Load(req Request) (CachedResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp, ok := s.entries[req]
	if !ok {
		return CachedResponse{}, false
	}
	return resp.clone(), true
}

// Store records resp for req, replacing any earlier entry.
func (s *MemoryStore) Store(req Request, resp CachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[Request]CachedResponse)
	}
	s.entries[req] = resp.clone()
}

// Len reports the number of stored responses.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (c CachedResponse) clone() CachedResponse {
	out := CachedResponse{StatusCode: c.StatusCode, Header: c.Header.Clone()}
	if c.Body != nil {
		out.Body = append([]byte(nil), c.Body...)
	}
	return out
}

func (c CachedResponse) response(req *http.Request) *http.Response {
	header := c.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		Status:        http.StatusText(c.StatusCode),
		StatusCode:    c.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		ContentLength: int64(len(c.Body)),
		Request:       req,
	}
}
