package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/service"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusUnprocessableEntity,
	service.ErrWeakPassword:        http.StatusUnprocessableEntity,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrInactiveAccount:     http.StatusUnauthorized,
	service.ErrEmptyFilename:       http.StatusUnprocessableEntity,
	service.ErrUnsupportedFileType: http.StatusBadRequest,
	service.ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	service.ErrTooManyFiles:        http.StatusBadRequest,

	store.ErrUserNotFound:          http.StatusNotFound,
	store.ErrHeroNotFound:          http.StatusNotFound,
	store.ErrFileNotFound:          http.StatusNotFound,
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrHeroNameAlreadyExists: http.StatusConflict,
	store.ErrIntegrityViolation:    http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

var errorMessageMap = map[error]string{
	service.ErrInvalidCredentials:  "Invalid username or password",
	service.ErrInactiveAccount:     "User account is inactive",
	service.ErrEmptyFilename:       "Filename must not be empty",
	service.ErrUnsupportedFileType: "Unsupported file type",
	service.ErrFileTooLarge:        "File size exceeds the 10MB limit",
	service.ErrTooManyFiles:        "Maximum 10 files per upload",

	store.ErrUserNotFound:          "User not found",
	store.ErrHeroNotFound:          "Hero not found",
	store.ErrFileNotFound:          "File not found",
	store.ErrUsernameAlreadyExists: "Username already exists",
	store.ErrEmailAlreadyExists:    "Email already exists",
	store.ErrHeroNameAlreadyExists: "Hero name already exists",
	store.ErrIntegrityViolation:    "Data conflict: the record already exists or violates a constraint",
}

var databaseErrors = []error{
	store.ErrBuildingSQLQuery,
	store.ErrExecutingQuery,
	store.ErrExecutingStatement,
	store.ErrScanningRow,
	store.ErrScanningRows,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	if isDatabaseError(err) {
		return "Database operation failed, please try again later"
	}
	if status == http.StatusInternalServerError {
		return "Internal server error"
	}
	return http.StatusText(status)
}

func errorCodeFromError(err error, status int) string {
	switch status {
	case http.StatusNotFound:
		return models.ErrCodeNotFound
	case http.StatusConflict:
		return models.ErrCodeIntegrityError
	case http.StatusUnprocessableEntity:
		return models.ErrCodeValidationError
	case http.StatusInternalServerError:
		if isDatabaseError(err) {
			return models.ErrCodeDatabaseError
		}
		return models.ErrCodeInternalServerError
	default:
		return ""
	}
}

func isDatabaseError(err error) bool {
	for _, target := range databaseErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError translates a service or storage error into the error
// envelope. Validation failures and weak passwords carry their full issue
// lists so clients see every violated rule at once.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *service.ValidationFailedError
	if errors.As(err, &validationErr) {
		writeValidationErrors(w, "Validation failed", validationErr.Errors)
		return
	}

	var weakPasswordErr *service.WeakPasswordError
	if errors.As(err, &weakPasswordErr) {
		errs := make([]models.ValidationError, 0, len(weakPasswordErr.Issues))
		for _, issue := range weakPasswordErr.Issues {
			errs = append(errs, models.ValidationError{Field: "password", Message: issue})
		}
		writeValidationErrors(w, "Password validation failed", errs)
		return
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed with server error")
	}
	writeError(w, status, messageFromError(err, status), errorCodeFromError(err, status))
}
