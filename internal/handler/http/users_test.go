package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-api-template/internal/service"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserEndpoint_Created(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.createUserFn = func(ctx context.Context, create models.UserCreate) (models.User, error) {
		return models.User{ID: 7, Username: create.Username, Email: create.Email, IsActive: true}, nil
	}

	body := `{"username": "alice", "email": "alice@example.com", "password": "Password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.True(t, response.Success)
	assert.Equal(t, "User created successfully", response.Message)

	data, ok := response.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "alice", data["username"])
	assert.NotContains(t, data, "password")
}

func TestCreateUserEndpoint_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.False(t, response.Success)
	assert.Equal(t, "Invalid JSON was passed", response.Message)
}

func TestCreateUserEndpoint_DuplicateUsername(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.createUserFn = func(ctx context.Context, create models.UserCreate) (models.User, error) {
		return models.User{}, store.ErrUsernameAlreadyExists
	}

	body := `{"username": "alice", "email": "alice@example.com", "password": "Password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.False(t, response.Success)
	assert.Equal(t, "Username already exists", response.Message)
	assert.Equal(t, models.ErrCodeIntegrityError, response.ErrorCode)
}

func TestCreateUserEndpoint_WeakPassword(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.createUserFn = func(ctx context.Context, create models.UserCreate) (models.User, error) {
		return models.User{}, &service.WeakPasswordError{Issues: []string{
			"password must be at least 6 characters long",
			"password is too common",
		}}
	}

	body := `{"username": "alice", "email": "alice@example.com", "password": "admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.False(t, response.Success)
	assert.Equal(t, "Password validation failed", response.Message)
	assert.Equal(t, models.ErrCodeValidationError, response.ErrorCode)
	require.Len(t, response.Errors, 2)
	assert.Equal(t, "password", response.Errors[0].Field)
	assert.Equal(t, "password", response.Errors[1].Field)
}

func TestCreateUserEndpoint_ValidationErrors(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.createUserFn = func(ctx context.Context, create models.UserCreate) (models.User, error) {
		return models.User{}, &service.ValidationFailedError{Errors: []models.ValidationError{
			{Field: "username", Message: "username must be 3-50 characters long"},
			{Field: "email", Message: "email address is not valid"},
		}}
	}

	body := `{"username": "x", "email": "nope", "password": "Password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation failed", response.Message)
	assert.Equal(t, models.ErrCodeValidationError, response.ErrorCode)
	require.Len(t, response.Errors, 2)
	assert.Equal(t, "username", response.Errors[0].Field)
	assert.Equal(t, "email", response.Errors[1].Field)
}

func TestGetUserEndpoint_NotFound(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.getUserFn = func(ctx context.Context, userID int64) (models.User, error) {
		return models.User{}, store.ErrUserNotFound
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.False(t, response.Success)
	assert.Nil(t, response.Data)
	assert.Equal(t, "User not found", response.Message)
	assert.Equal(t, models.ErrCodeNotFound, response.ErrorCode)
}

func TestGetUserEndpoint_NonNumericID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decodeEnvelope(t, rec)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "user_id", response.Errors[0].Field)
	assert.Equal(t, "abc", response.Errors[0].Value)
}

func TestListUsersEndpoint_PassesPagination(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotParams models.PaginationParams
	mocks.users.listUsersFn = func(ctx context.Context, params models.PaginationParams) ([]models.User, models.Pagination, error) {
		gotParams = params
		return []models.User{{ID: 1, Username: "alice"}}, models.NewPagination(21, params), nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/?page=2&size=10", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotParams.Page)
	assert.Equal(t, 10, gotParams.Size)

	response := decodeEnvelope(t, rec)
	data, ok := response.Data.(map[string]any)
	require.True(t, ok)
	pagination, ok := data["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(21), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
}

func TestListUsersEndpoint_DefaultsOnMalformedQuery(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotParams models.PaginationParams
	mocks.users.listUsersFn = func(ctx context.Context, params models.PaginationParams) ([]models.User, models.Pagination, error) {
		gotParams = params
		return nil, models.NewPagination(0, params), nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/?page=abc&size=", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultPage, gotParams.Page)
	assert.Equal(t, models.DefaultSize, gotParams.Size)
}

func TestDeleteUserEndpoint_NullData(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/5", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.True(t, response.Success)
	assert.Nil(t, response.Data)
	assert.Equal(t, "User deleted successfully", response.Message)
}

func TestLoginEndpoint_Success(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotLogin models.UserLogin
	mocks.users.loginFn = func(ctx context.Context, login models.UserLogin) (models.User, error) {
		gotLogin = login
		return models.User{ID: 3, Username: login.Username, IsActive: true}, nil
	}

	body := `{"username": "alice", "password": "Password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", gotLogin.Username)
	response := decodeEnvelope(t, rec)
	assert.True(t, response.Success)
	assert.Equal(t, "Login successful", response.Message)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.loginFn = func(ctx context.Context, login models.UserLogin) (models.User, error) {
		return models.User{}, service.ErrInvalidCredentials
	}

	body := `{"username": "alice", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.False(t, response.Success)
	assert.Equal(t, "Invalid username or password", response.Message)
	assert.Empty(t, response.ErrorCode)
}

func TestLoginEndpoint_InactiveAccount(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.users.loginFn = func(ctx context.Context, login models.UserLogin) (models.User, error) {
		return models.User{}, service.ErrInactiveAccount
	}

	body := `{"username": "ghost", "password": "Password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.Equal(t, "User account is inactive", response.Message)
}

func TestUpdateUserEndpoint_Success(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotUpdate models.UserUpdate
	mocks.users.updateUserFn = func(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
		gotUpdate = update
		email := "new@example.com"
		return models.User{ID: userID, Email: email}, nil
	}

	body := `{"email": "new@example.com"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/5", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUpdate.Email)
	assert.Equal(t, "new@example.com", *gotUpdate.Email)
	assert.Nil(t, gotUpdate.Username)
}
