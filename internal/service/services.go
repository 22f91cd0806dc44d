package service

import (
	"github.com/MKhiriev/go-api-template/internal/config"
	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/store"
)

type Services struct {
	UserService   UserService
	HeroService   HeroService
	FileService   FileService
	HealthService HealthService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		UserService:   NewUserService(storages.UserRepository, logger),
		HeroService:   NewHeroService(storages.HeroRepository, logger),
		FileService:   NewFileService(storages.FileStorage, logger),
		HealthService: NewHealthService(storages.DB, cfg.App, logger),
	}
}
