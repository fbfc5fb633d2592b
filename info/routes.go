package info

import (
	"net/http"

	"github.com/drblury/netcheck/responder"
)

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetConnectivity races the configured probe set and reports the outcome.
func (ih *InfoHandler) GetConnectivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ih.withProbeTimeout(r.Context())
	defer cancel()

	if !ih.checker.Race(ctx, ih.probes) {
		ih.HandleOffline(w, r, ErrOffline, responder.RaceOutcome{Probes: ih.probes.Len(), Timeout: ih.probeTimeout})
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "online")
}

// GetReadyz implements the readiness probe recommended for Kubernetes.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.readinessChecks); err != nil {
		ih.HandleNotReady(w, r, err)
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready")
}
