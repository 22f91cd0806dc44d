package http

import "net/http"

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := h.services.HealthService.Check(r.Context())
	writeSuccess(w, http.StatusOK, status, "Service is healthy")
}

// healthDatabase always answers 200; a failed probe is reported inside the
// payload so monitoring can read the reason without special-casing status
// codes.
func (h *Handler) healthDatabase(w http.ResponseWriter, r *http.Request) {
	database := h.services.HealthService.CheckDatabase(r.Context())

	message := "Database is healthy"
	if database.Status != "healthy" {
		message = "Database is unhealthy"
	}
	writeSuccess(w, http.StatusOK, database, message)
}

func (h *Handler) healthDetailed(w http.ResponseWriter, r *http.Request) {
	detailed := h.services.HealthService.CheckDetailed(r.Context())
	writeSuccess(w, http.StatusOK, detailed, "Detailed health check completed")
}
