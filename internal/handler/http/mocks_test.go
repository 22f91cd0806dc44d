package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/service"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
	"github.com/go-chi/chi/v5"
)

// ─────────────────────────────────────────────
// Mock: service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	createUserFn func(ctx context.Context, create models.UserCreate) (models.User, error)
	getUserFn    func(ctx context.Context, userID int64) (models.User, error)
	listUsersFn  func(ctx context.Context, params models.PaginationParams) ([]models.User, models.Pagination, error)
	updateUserFn func(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	deleteUserFn func(ctx context.Context, userID int64) error
	loginFn      func(ctx context.Context, login models.UserLogin) (models.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, create models.UserCreate) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, create)
	}
	return models.User{ID: 1, Username: create.Username, Email: create.Email, IsActive: true}, nil
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, params models.PaginationParams) ([]models.User, models.Pagination, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, params)
	}
	return nil, models.NewPagination(0, params), nil
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, userID, update)
	}
	return models.User{ID: userID}, nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockUserService) Login(ctx context.Context, login models.UserLogin) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, login)
	}
	return models.User{ID: 1, Username: login.Username, IsActive: true}, nil
}

// ─────────────────────────────────────────────
// Mock: service.HeroService
// ─────────────────────────────────────────────

type mockHeroService struct {
	createHeroFn           func(ctx context.Context, create models.HeroCreate) (models.Hero, error)
	getHeroFn              func(ctx context.Context, heroID int64) (models.Hero, error)
	getHeroByNameFn        func(ctx context.Context, name string) (models.Hero, error)
	listHeroesFn           func(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error)
	updateHeroFn           func(ctx context.Context, heroID int64, update models.HeroUpdate) (models.Hero, error)
	deleteHeroFn           func(ctx context.Context, heroID int64) error
	setHeroActiveFn        func(ctx context.Context, heroID int64, active bool) (models.Hero, error)
	listTeamsFn            func(ctx context.Context) ([]string, error)
	getPowerDistributionFn func(ctx context.Context) (models.PowerDistribution, error)
}

func (m *mockHeroService) CreateHero(ctx context.Context, create models.HeroCreate) (models.Hero, error) {
	if m.createHeroFn != nil {
		return m.createHeroFn(ctx, create)
	}
	return models.Hero{ID: 1, Name: create.Name, SecretName: create.SecretName, PowerLevel: 1, IsActive: true}, nil
}

func (m *mockHeroService) GetHero(ctx context.Context, heroID int64) (models.Hero, error) {
	if m.getHeroFn != nil {
		return m.getHeroFn(ctx, heroID)
	}
	return models.Hero{ID: heroID}, nil
}

func (m *mockHeroService) GetHeroByName(ctx context.Context, name string) (models.Hero, error) {
	if m.getHeroByNameFn != nil {
		return m.getHeroByNameFn(ctx, name)
	}
	return models.Hero{ID: 1, Name: name}, nil
}

func (m *mockHeroService) ListHeroes(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error) {
	if m.listHeroesFn != nil {
		return m.listHeroesFn(ctx, filter, params)
	}
	return nil, 0, nil
}

func (m *mockHeroService) UpdateHero(ctx context.Context, heroID int64, update models.HeroUpdate) (models.Hero, error) {
	if m.updateHeroFn != nil {
		return m.updateHeroFn(ctx, heroID, update)
	}
	return models.Hero{ID: heroID}, nil
}

func (m *mockHeroService) DeleteHero(ctx context.Context, heroID int64) error {
	if m.deleteHeroFn != nil {
		return m.deleteHeroFn(ctx, heroID)
	}
	return nil
}

func (m *mockHeroService) SetHeroActive(ctx context.Context, heroID int64, active bool) (models.Hero, error) {
	if m.setHeroActiveFn != nil {
		return m.setHeroActiveFn(ctx, heroID, active)
	}
	return models.Hero{ID: heroID, IsActive: active}, nil
}

func (m *mockHeroService) ListTeams(ctx context.Context) ([]string, error) {
	if m.listTeamsFn != nil {
		return m.listTeamsFn(ctx)
	}
	return []string{}, nil
}

func (m *mockHeroService) GetPowerDistribution(ctx context.Context) (models.PowerDistribution, error) {
	if m.getPowerDistributionFn != nil {
		return m.getPowerDistributionFn(ctx)
	}
	return models.PowerDistribution{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.FileService
// ─────────────────────────────────────────────

type mockFileService struct {
	uploadFileFn     func(ctx context.Context, upload models.FileUpload) (models.FileInfo, error)
	uploadFilesFn    func(ctx context.Context, uploads []models.FileUpload) (models.BatchUploadResult, error)
	lookupFileFn     func(ctx context.Context, fileID string) (models.FileInfo, string, error)
	deleteFileFn     func(ctx context.Context, fileID string) (models.FileDeleteResult, error)
	listFilesFn      func(ctx context.Context) (models.FileListResult, error)
	getFileInfoFn    func(ctx context.Context, fileID string) (models.FileInfo, error)
	getUploadStatsFn func(ctx context.Context) (models.UploadStats, error)
}

func (m *mockFileService) UploadFile(ctx context.Context, upload models.FileUpload) (models.FileInfo, error) {
	if m.uploadFileFn != nil {
		return m.uploadFileFn(ctx, upload)
	}
	return models.FileInfo{FileID: "generated-id", OriginalName: upload.Filename}, nil
}

func (m *mockFileService) UploadFiles(ctx context.Context, uploads []models.FileUpload) (models.BatchUploadResult, error) {
	if m.uploadFilesFn != nil {
		return m.uploadFilesFn(ctx, uploads)
	}
	return models.BatchUploadResult{TotalUploaded: len(uploads)}, nil
}

func (m *mockFileService) LookupFile(ctx context.Context, fileID string) (models.FileInfo, string, error) {
	if m.lookupFileFn != nil {
		return m.lookupFileFn(ctx, fileID)
	}
	return models.FileInfo{}, "", store.ErrFileNotFound
}

func (m *mockFileService) DeleteFile(ctx context.Context, fileID string) (models.FileDeleteResult, error) {
	if m.deleteFileFn != nil {
		return m.deleteFileFn(ctx, fileID)
	}
	return models.FileDeleteResult{FileID: fileID, Deleted: true}, nil
}

func (m *mockFileService) ListFiles(ctx context.Context) (models.FileListResult, error) {
	if m.listFilesFn != nil {
		return m.listFilesFn(ctx)
	}
	return models.FileListResult{Files: []models.FileInfo{}}, nil
}

func (m *mockFileService) GetFileInfo(ctx context.Context, fileID string) (models.FileInfo, error) {
	if m.getFileInfoFn != nil {
		return m.getFileInfoFn(ctx, fileID)
	}
	return models.FileInfo{FileID: fileID}, nil
}

func (m *mockFileService) GetUploadStats(ctx context.Context) (models.UploadStats, error) {
	if m.getUploadStatsFn != nil {
		return m.getUploadStatsFn(ctx)
	}
	return models.UploadStats{TypeStatistics: map[string]models.FileTypeStat{}}, nil
}

// ─────────────────────────────────────────────
// Mock: service.HealthService
// ─────────────────────────────────────────────

type mockHealthService struct {
	checkFn         func(ctx context.Context) models.HealthStatus
	checkDatabaseFn func(ctx context.Context) models.DatabaseHealth
	checkDetailedFn func(ctx context.Context) models.DetailedHealth
}

func (m *mockHealthService) Check(ctx context.Context) models.HealthStatus {
	if m.checkFn != nil {
		return m.checkFn(ctx)
	}
	return models.HealthStatus{Status: "healthy", Service: "go-api-template", Version: "1.0.0", Timestamp: time.Now().UTC()}
}

func (m *mockHealthService) CheckDatabase(ctx context.Context) models.DatabaseHealth {
	if m.checkDatabaseFn != nil {
		return m.checkDatabaseFn(ctx)
	}
	return models.DatabaseHealth{Status: "healthy", Database: "connected"}
}

func (m *mockHealthService) CheckDetailed(ctx context.Context) models.DetailedHealth {
	if m.checkDetailedFn != nil {
		return m.checkDetailedFn(ctx)
	}
	return models.DetailedHealth{Status: "healthy"}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testServices struct {
	users  *mockUserService
	heroes *mockHeroService
	files  *mockFileService
	health *mockHealthService
}

// newTestRouter builds the full router around fresh mocks, so tests
// exercise routing, middleware and handlers together.
func newTestRouter(t *testing.T) (*chi.Mux, *testServices) {
	t.Helper()

	mocks := &testServices{
		users:  &mockUserService{},
		heroes: &mockHeroService{},
		files:  &mockFileService{},
		health: &mockHealthService{},
	}
	handler := NewHandler(&service.Services{
		UserService:   mocks.users,
		HeroService:   mocks.heroes,
		FileService:   mocks.files,
		HealthService: mocks.health,
	}, logger.Nop())

	return handler.Init(), mocks
}

// decodeEnvelope parses the uniform response envelope from a recorder.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()

	var response models.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return response
}
