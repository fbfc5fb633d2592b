package responder_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/drblury/netcheck/responder"
)

func ExampleResponder_RespondWithJSON() {
	r := responder.NewResponder()

	rec := httptest.NewRecorder()
	r.RespondWithJSON(rec, httptest.NewRequest(http.MethodGet, "/connectivity", nil), http.StatusOK, map[string]string{"status": "online"})

	fmt.Println(rec.Code)
	fmt.Println(rec.Header().Get("Content-Type"))
	fmt.Println(strings.TrimSpace(rec.Body.String()))
	// Output:
	// 200
	// application/json
	// {"status":"online"}
}

func ExampleResponder_HandleOffline() {
	r := responder.NewResponder(responder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	rec := httptest.NewRecorder()
	r.HandleOffline(rec, httptest.NewRequest(http.MethodGet, "/connectivity", nil),
		errors.New("no probe succeeded"),
		responder.RaceOutcome{Probes: 3, Timeout: 5 * time.Second})

	var problem responder.ProblemDetails
	_ = json.Unmarshal(rec.Body.Bytes(), &problem)
	fmt.Println(rec.Code)
	fmt.Println(problem.Type)
	fmt.Println(problem.Title)
	fmt.Println(problem.Probes, problem.Timeout)
	// Output:
	// 503
	// urn:netcheck:problem:offline
	// Offline
	// 3 5s
}
