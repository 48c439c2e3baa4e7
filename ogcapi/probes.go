package ogcapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/drblury/geoweaver/probe"
)

type probePayload struct {
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

type versionPayload struct {
	ID         string   `json:"id"`
	Version    string   `json:"version"`
	Operations []string `json:"operations"`
	Extensions []string `json:"extensions"`
}

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.respondProbe(w, r, http.StatusOK, "HEALTHY", h.registry.Names()...)
}

// GetHealthz implements the liveness probe recommended for Kubernetes.
func (h *Handler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.runChecks(r.Context(), h.livenessChecks); err != nil {
		h.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "liveness probe failed")
		return
	}
	h.respondProbe(w, r, http.StatusOK, "ok")
}

// GetReadyz implements the readiness probe recommended for Kubernetes.
func (h *Handler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.runChecks(r.Context(), h.readinessChecks); err != nil {
		h.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "readiness probe failed")
		return
	}
	h.respondProbe(w, r, http.StatusOK, "ready")
}

// GetVersion describes the service descriptor and the registered extensions.
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := versionPayload{
		Operations: []string{},
		Extensions: h.registry.Names(),
	}
	if h.descriptor != nil {
		payload.ID = h.descriptor.ID()
		payload.Version = h.descriptor.Version().Original()
		payload.Operations = h.descriptor.Operations()
	}
	h.RespondWithJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) respondProbe(w http.ResponseWriter, r *http.Request, statusCode int, state string, details ...string) {
	payload := probePayload{Status: state}
	if len(details) > 0 {
		payload.Details = append(payload.Details, details...)
	}
	h.RespondWithJSON(w, r, statusCode, payload)
}

func (h *Handler) runChecks(ctx context.Context, checks []probe.Func) error {
	if len(checks) == 0 {
		return nil
	}

	timeout := h.probeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for idx, check := range checks {
		if err := check(probeCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("probe %d timed out after %s", idx+1, timeout)
			}
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("probe %d was cancelled", idx+1)
			}
			return fmt.Errorf("probe %d failed: %w", idx+1, err)
		}
	}

	return nil
}

func filterProbes(checks []probe.Func) []probe.Func {
	filtered := make([]probe.Func, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
