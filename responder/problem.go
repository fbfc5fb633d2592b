package responder

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Problem types carried in ProblemDetails.Type.
const (
	TypeOffline  = "urn:netcheck:problem:offline"
	TypeNotReady = "urn:netcheck:problem:not-ready"
)

// RaceOutcome describes the race behind an offline answer.
type RaceOutcome struct {
	// Probes is the number of distinct probes that were raced.
	Probes int
	// Timeout is the deadline the race ran under; zero means none.
	Timeout time.Duration
}

// ProblemDetails is an RFC 9457 problem document extended with the race
// outcome.
type ProblemDetails struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	TraceID   string `json:"traceId"`
	CheckedAt string `json:"checkedAt"`
	Probes    int    `json:"probes,omitempty"`
	Timeout   string `json:"timeout,omitempty"`
}

// HandleOffline answers 503 for a race in which no probe succeeded.
func (r *Responder) HandleOffline(w http.ResponseWriter, req *http.Request, err error, outcome RaceOutcome) {
	problem := r.newProblem(req, TypeOffline, "Offline", err)
	problem.Probes = outcome.Probes
	if outcome.Timeout > 0 {
		problem.Timeout = outcome.Timeout.String()
	}
	r.logger().Log(requestContext(req), slog.LevelWarn, "connectivity check failed",
		"traceId", problem.TraceID,
		"instance", problem.Instance,
		"probes", problem.Probes,
		"timeout", problem.Timeout,
		"error", problem.Detail)
	r.respondWithJSON(w, http.StatusServiceUnavailable, problem, problemContentType)
}

// HandleNotReady answers 503 for a failed readiness run.
func (r *Responder) HandleNotReady(w http.ResponseWriter, req *http.Request, err error) {
	problem := r.newProblem(req, TypeNotReady, "Not Ready", err)
	r.logger().Log(requestContext(req), slog.LevelWarn, "readiness check failed",
		"traceId", problem.TraceID,
		"instance", problem.Instance,
		"error", problem.Detail)
	r.respondWithJSON(w, http.StatusServiceUnavailable, problem, problemContentType)
}

func (r *Responder) newProblem(req *http.Request, typ, title string, err error) ProblemDetails {
	problem := ProblemDetails{
		Type:      typ,
		Title:     title,
		Status:    http.StatusServiceUnavailable,
		Instance:  requestInstance(req),
		TraceID:   newTraceID(),
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		problem.Detail = err.Error()
	}
	return problem
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
