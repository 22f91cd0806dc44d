package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var create models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	user, err := h.services.UserService.CreateUser(ctx, create)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, models.NewUserResponse(user), "User created successfully")
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := paginationFromQuery(r)

	users, pagination, err := h.services.UserService.ListUsers(ctx, params)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	data := models.UserListResponse{
		Users:      models.NewUserResponses(users),
		Pagination: pagination,
	}
	writeSuccess(w, http.StatusOK, data, "Users retrieved successfully")
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userIDFromURL(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewUserResponse(user), "User retrieved successfully")
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromURL(w, r)
	if !ok {
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	user, err := h.services.UserService.UpdateUser(ctx, userID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewUserResponse(user), "User updated successfully")
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "User deleted successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	user, err := h.services.UserService.Login(ctx, credentials)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewUserResponse(user), "Login successful")
}

// userIDFromURL parses the {userID} path parameter and answers the request
// itself when the value is not a number.
func (h *Handler) userIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeValidationErrors(w, "Validation failed", []models.ValidationError{
			{Field: "user_id", Message: "user id must be an integer", Value: raw},
		})
		return 0, false
	}
	return userID, true
}

// paginationFromQuery reads page and size query parameters, falling back
// to defaults on absent or malformed values.
func paginationFromQuery(r *http.Request) models.PaginationParams {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = models.DefaultPage
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		size = models.DefaultSize
	}
	return models.NewPaginationParams(page, size)
}
