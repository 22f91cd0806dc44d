package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-api-template/models"
)

// writeJSON serializes the envelope with the given status code. Encoding
// failures at this point cannot be reported to the client anymore; they
// surface in the request log through the logging middleware's size field.
func writeJSON(w http.ResponseWriter, statusCode int, response models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any, message string) {
	writeJSON(w, statusCode, models.SuccessResponse(data, message))
}

func writeError(w http.ResponseWriter, statusCode int, message, errorCode string) {
	writeJSON(w, statusCode, models.ErrorResponse(message, errorCode))
}

func writeValidationErrors(w http.ResponseWriter, message string, errs []models.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, models.ValidationErrorResponse(message, errs))
}
