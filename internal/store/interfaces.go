package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-api-template/models"
)

// UserRepository is the data-access layer of the user resource.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, login string) (models.User, error)
	ListActiveUsers(ctx context.Context, params models.PaginationParams) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	SoftDeleteUser(ctx context.Context, userID int64) error
	SetLastLogin(ctx context.Context, userID int64, at time.Time) error
	ActiveUsernameExists(ctx context.Context, username string) (bool, error)
	ActiveEmailExists(ctx context.Context, email string) (bool, error)
}

// HeroRepository is the data-access layer of the hero resource.
type HeroRepository interface {
	CreateHero(ctx context.Context, hero models.Hero) (models.Hero, error)
	GetHeroByID(ctx context.Context, heroID int64) (models.Hero, error)
	GetHeroByName(ctx context.Context, name string) (models.Hero, error)
	ListHeroes(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error)
	UpdateHero(ctx context.Context, heroID int64, update models.HeroUpdate) (models.Hero, error)
	DeleteHero(ctx context.Context, heroID int64) error
	SetHeroActive(ctx context.Context, heroID int64, active bool) (models.Hero, error)
	// HeroNameExists reports whether a hero with the given name exists.
	// A non-zero excludeID leaves that row out of the check (used on update).
	HeroNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	ListTeams(ctx context.Context) ([]string, error)
	GetPowerStats(ctx context.Context) (models.PowerStats, error)
	CountHeroesInPowerRange(ctx context.Context, minPower, maxPower int) (int64, error)
}

// FileStorage persists uploads on the local filesystem. Files are stored
// as "{uuid}{ext}"; all metadata is derived from stat calls at read time,
// nothing is written to the database.
type FileStorage interface {
	Save(originalName, contentType string, content []byte) (models.FileInfo, error)
	// Lookup resolves a file id to its metadata and absolute path by
	// glob-matching "{id}.*" inside the upload directory.
	Lookup(fileID string) (models.FileInfo, string, error)
	Delete(fileID string) error
	List() ([]models.FileInfo, error)
	Info(fileID string) (models.FileInfo, error)
	Stats() (models.UploadStats, error)
}
