package store

import (
	"context"

	"github.com/MKhiriev/go-api-template/internal/config"
	"github.com/MKhiriev/go-api-template/internal/logger"
)

// Storages bundles every persistence backend the application uses: the
// relational repositories and the filesystem upload store.
type Storages struct {
	DB             *DB
	UserRepository UserRepository
	HeroRepository HeroRepository
	FileStorage    FileStorage
}

// NewStorages connects the database, runs nothing else (migrations are the
// caller's decision) and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	fileStorage, err := NewFileStorage(cfg.Files, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		DB:             db,
		UserRepository: NewUserRepository(db, log),
		HeroRepository: NewHeroRepository(db, log),
		FileStorage:    fileStorage,
	}, nil
}
