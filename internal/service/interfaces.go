package service

import (
	"context"

	"github.com/MKhiriev/go-api-template/models"
)

// UserService implements the business rules of the user resource.
type UserService interface {
	CreateUser(ctx context.Context, create models.UserCreate) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context, params models.PaginationParams) ([]models.User, models.Pagination, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	Login(ctx context.Context, login models.UserLogin) (models.User, error)
}

// HeroService implements the business rules of the hero resource.
type HeroService interface {
	CreateHero(ctx context.Context, create models.HeroCreate) (models.Hero, error)
	GetHero(ctx context.Context, heroID int64) (models.Hero, error)
	GetHeroByName(ctx context.Context, name string) (models.Hero, error)
	ListHeroes(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error)
	UpdateHero(ctx context.Context, heroID int64, update models.HeroUpdate) (models.Hero, error)
	DeleteHero(ctx context.Context, heroID int64) error
	SetHeroActive(ctx context.Context, heroID int64, active bool) (models.Hero, error)
	ListTeams(ctx context.Context) ([]string, error)
	GetPowerDistribution(ctx context.Context) (models.PowerDistribution, error)
}

// FileService implements the business rules of the file resource.
type FileService interface {
	UploadFile(ctx context.Context, upload models.FileUpload) (models.FileInfo, error)
	UploadFiles(ctx context.Context, uploads []models.FileUpload) (models.BatchUploadResult, error)
	LookupFile(ctx context.Context, fileID string) (models.FileInfo, string, error)
	DeleteFile(ctx context.Context, fileID string) (models.FileDeleteResult, error)
	ListFiles(ctx context.Context) (models.FileListResult, error)
	GetFileInfo(ctx context.Context, fileID string) (models.FileInfo, error)
	GetUploadStats(ctx context.Context) (models.UploadStats, error)
}

// HealthService reports liveness of the service and its database.
type HealthService interface {
	Check(ctx context.Context) models.HealthStatus
	CheckDatabase(ctx context.Context) models.DatabaseHealth
	CheckDetailed(ctx context.Context) models.DetailedHealth
}
