package info_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/drblury/netcheck/connectivity"
	"github.com/drblury/netcheck/info"
	"github.com/drblury/netcheck/probe"
	"github.com/drblury/netcheck/responder"
)

func ExampleInfoHandler_full() {
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer endpoint.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := connectivity.NewChecker(connectivity.WithLogger(logger))
	set := probe.NewSet(probe.MustParse(endpoint.URL+"/generate_204", probe.Expect204()))

	handler := info.NewInfoHandler(
		info.WithInfoResponder(responder.NewResponder(responder.WithLogger(logger))),
		info.WithChecker(checker),
		info.WithProbeSet(set),
		info.WithReadinessChecks(info.ConnectivityCheck(checker, set)),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/connectivity", handler.GetConnectivity)
	mux.HandleFunc("/readyz", handler.GetReadyz)

	for _, path := range []string{"/connectivity", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		fmt.Println(rec.Code, strings.TrimSpace(rec.Body.String()))
	}
	// Output:
	// 200 {"status":"online"}
	// 200 {"status":"ready"}
}
