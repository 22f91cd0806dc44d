package http

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/models"
)

// withRecovery converts handler panics into the standard error envelope
// instead of an empty 500. [http.ErrAbortHandler] is re-panicked so the
// server can abort the connection as usual.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := logger.FromRequest(r)
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")

			writeError(w, http.StatusInternalServerError, "Internal server error", models.ErrCodeInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
