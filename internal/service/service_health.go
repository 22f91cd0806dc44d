package service

import (
	"context"
	"runtime"
	"time"

	"github.com/MKhiriev/go-api-template/internal/config"
	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
)

// healthService is the concrete implementation of HealthService.
type healthService struct {
	db          *store.DB
	serviceName string
	version     string
	logger      *logger.Logger
}

// NewHealthService constructs a HealthService probing the given database.
func NewHealthService(db *store.DB, cfg config.App, logger *logger.Logger) HealthService {
	return &healthService{
		db:          db,
		serviceName: cfg.Name,
		version:     cfg.Version,
		logger:      logger,
	}
}

// Check reports basic liveness. It never touches the database and always
// comes back healthy while the process is serving requests.
func (s *healthService) Check(_ context.Context) models.HealthStatus {
	return models.HealthStatus{
		Status:    "healthy",
		Service:   s.serviceName,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	}
}

// CheckDatabase probes the database with a trivial query. A failed probe
// is reported in the payload rather than as an error so the endpoint
// still answers 200 when the database is down.
func (s *healthService) CheckDatabase(ctx context.Context) models.DatabaseHealth {
	log := logger.FromContext(ctx)

	if err := s.db.HealthCheck(ctx); err != nil {
		log.Err(err).Msg("database health check failed")
		message := err.Error()
		return models.DatabaseHealth{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    &message,
		}
	}

	return models.DatabaseHealth{
		Status:   "healthy",
		Database: "connected",
	}
}

// CheckDetailed combines the database probe with Go runtime figures.
// The overall status follows the database status.
func (s *healthService) CheckDetailed(ctx context.Context) models.DetailedHealth {
	database := s.CheckDatabase(ctx)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return models.DetailedHealth{
		Status: database.Status,
		Service: models.ServiceInfo{
			Name:      s.serviceName,
			Version:   s.version,
			GoVersion: runtime.Version(),
			Uptime:    time.Now().UTC(),
		},
		Database: database,
		Runtime: models.RuntimeStats{
			NumGoroutine:   runtime.NumGoroutine(),
			NumCPU:         runtime.NumCPU(),
			AllocBytes:     memStats.Alloc,
			SysBytes:       memStats.Sys,
			NumGC:          memStats.NumGC,
			HeapObjects:    memStats.HeapObjects,
			TotalAllocated: memStats.TotalAlloc,
		},
	}
}
