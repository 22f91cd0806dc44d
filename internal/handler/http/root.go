package http

import "net/http"

// root answers the welcome payload with the service version and a pointer
// to the health endpoint.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	status := h.services.HealthService.Check(r.Context())

	data := map[string]any{
		"service": status.Service,
		"version": status.Version,
		"health":  "/api/v1/health",
	}
	writeSuccess(w, http.StatusOK, data, "Welcome to the Go API Template!")
}
