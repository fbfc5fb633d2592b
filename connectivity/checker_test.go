package connectivity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/drblury/netcheck/catalog"
	"github.com/drblury/netcheck/probe"
)

type route struct {
	status int
	delay  time.Duration
	err    error
}

type mockTransport struct {
	routes    map[string]route
	calls     atomic.Int32
	completed atomic.Int32
	cancelled chan string
}

func newMockTransport(routes map[string]route) *mockTransport {
	return &mockTransport{
		routes:    routes,
		cancelled: make(chan string, len(routes)),
	}
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.calls.Add(1)
	defer m.completed.Add(1)

	r := m.routes[req.URL.String()]
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-req.Context().Done():
			select {
			case m.cancelled <- req.URL.String():
			default:
			}
			return nil, req.Context().Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func mockProbe(t *testing.T, transport *mockTransport, url string, validate probe.Validator, opts ...probe.Option) probe.Probe {
	t.Helper()
	opts = append([]probe.Option{probe.WithHTTPClient(transport)}, opts...)
	p, ok := probe.Parse(url, validate, opts...)
	if !ok {
		t.Fatalf("invalid test url %s", url)
	}
	return p
}

func TestRaceEmptySet(t *testing.T) {
	if NewChecker().Race(context.Background(), probe.Set{}) {
		t.Fatal("expected empty set to report offline")
	}
	if CheckConnectivity(context.Background(), probe.NewSet()) {
		t.Fatal("expected empty set to report offline")
	}
}

func TestRaceSingleProbeMatchesCheck(t *testing.T) {
	transport := newMockTransport(map[string]route{
		"http://ok.test":   {status: http.StatusOK},
		"http://fail.test": {status: http.StatusBadGateway},
	})
	checker := NewChecker()

	for _, url := range []string{"http://ok.test", "http://fail.test"} {
		p := mockProbe(t, transport, url, probe.Expect200())
		direct := checker.Check(context.Background(), p)
		raced := checker.Race(context.Background(), probe.NewSet(p))
		if direct != raced {
			t.Fatalf("%s: race=%v check=%v", url, raced, direct)
		}
		if CheckProbe(context.Background(), p) != direct {
			t.Fatalf("%s: package level check disagrees", url)
		}
	}
}

func TestRaceSuccessAmongFailures(t *testing.T) {
	transport := newMockTransport(map[string]route{
		"http://a.test": {status: http.StatusOK},
		"http://b.test": {status: http.StatusInternalServerError},
	})
	set := probe.NewSet(
		mockProbe(t, transport, "http://a.test", probe.Expect200()),
		mockProbe(t, transport, "http://b.test", probe.Expect200()),
	)

	if !NewChecker().Race(context.Background(), set) {
		t.Fatal("expected race to succeed")
	}
}

func TestRaceCancelsLosers(t *testing.T) {
	transport := newMockTransport(map[string]route{
		"http://fast.test": {status: http.StatusNoContent, delay: 10 * time.Millisecond},
		"http://slow.test": {status: http.StatusNoContent, delay: 10 * time.Second},
		"http://down.test": {err: errors.New("connection refused")},
	})
	noTimeout := probe.WithTransportConfig(probe.DefaultTransportConfig().WithTimeout(0))
	set := probe.NewSet(
		mockProbe(t, transport, "http://fast.test", probe.Expect204(), noTimeout),
		mockProbe(t, transport, "http://slow.test", probe.Expect204(), noTimeout),
		mockProbe(t, transport, "http://down.test", probe.Expect204(), noTimeout),
	)

	start := time.Now()
	if !NewChecker().Race(context.Background(), set) {
		t.Fatal("expected race to succeed")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("expected race to return without waiting for the slow probe, took %s", elapsed)
	}

	select {
	case url := <-transport.cancelled:
		if url != "http://slow.test" {
			t.Fatalf("unexpected cancelled probe %s", url)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected the slow probe to be cancelled")
	}
}

func TestRaceAllFailWaitsForEveryProbe(t *testing.T) {
	routes := make(map[string]route)
	for i, e := range catalog.Endpoints() {
		routes[e.URL] = route{status: http.StatusServiceUnavailable, delay: time.Duration(i*5) * time.Millisecond}
	}
	transport := newMockTransport(routes)

	set := catalog.All(probe.WithHTTPClient(transport))
	if set.Len() != len(routes) {
		t.Fatalf("expected %d probes, got %d", len(routes), set.Len())
	}

	if NewChecker().Race(context.Background(), set) {
		t.Fatal("expected race to fail")
	}
	if got := transport.completed.Load(); got != int32(len(routes)) {
		t.Fatalf("expected all %d calls to resolve before returning, got %d", len(routes), got)
	}
}

func TestRaceTimeoutCountsAsFailure(t *testing.T) {
	transport := newMockTransport(map[string]route{
		"http://hang.test":  {status: http.StatusOK, delay: 5 * time.Second},
		"http://wrong.test": {status: http.StatusFound},
	})
	short := probe.WithTransportConfig(probe.DefaultTransportConfig().WithTimeout(20 * time.Millisecond))
	set := probe.NewSet(
		mockProbe(t, transport, "http://hang.test", probe.Expect200(), short),
		mockProbe(t, transport, "http://wrong.test", probe.Expect200(), short),
	)

	start := time.Now()
	if NewChecker().Race(context.Background(), set) {
		t.Fatal("expected race to fail")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("expected timeout to bound the race, took %s", elapsed)
	}
}

func TestRaceHonoursCallerDeadline(t *testing.T) {
	transport := newMockTransport(map[string]route{
		"http://a.test": {status: http.StatusOK, delay: 5 * time.Second},
		"http://b.test": {status: http.StatusOK, delay: 5 * time.Second},
	})
	noTimeout := probe.WithTransportConfig(probe.DefaultTransportConfig().WithTimeout(0))
	set := probe.NewSet(
		mockProbe(t, transport, "http://a.test", probe.Expect200(), noTimeout),
		mockProbe(t, transport, "http://b.test", probe.Expect200(), noTimeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if NewChecker().Race(ctx, set) {
		t.Fatal("expected caller deadline to fail the race")
	}
}

func TestCheckDefaultUsesDefaultSet(t *testing.T) {
	routes := make(map[string]route)
	for _, e := range catalog.Endpoints() {
		routes[e.URL] = route{status: http.StatusForbidden}
	}
	google, _ := catalog.Lookup("google")
	routes[google.URL] = route{status: google.Status}
	transport := newMockTransport(routes)

	if !CheckDefault(context.Background(), probe.WithHTTPClient(transport)) {
		t.Fatal("expected default set to succeed through google")
	}
	if got := transport.calls.Load(); got > 3 {
		t.Fatalf("expected at most three requests, got %d", got)
	}
}
