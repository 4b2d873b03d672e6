package service

import (
	"context"
	"time"

	"memories/internal/repository"
)

// HealthStatus is the database part of the /health report.
type HealthStatus struct {
	Database string
	Tables   int
	Healthy  bool
}

type HealthService interface {
	Check(ctx context.Context) HealthStatus
	Uptime() time.Duration
}

type healthService struct {
	healthRepo repository.HealthRepository
	startedAt  time.Time
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo, startedAt: time.Now()}
}

func (s *healthService) Check(ctx context.Context) HealthStatus {
	if err := s.healthRepo.Ping(ctx); err != nil {
		return HealthStatus{Database: "disconnected"}
	}

	countTables, err := s.healthRepo.CountTables(ctx)
	if err != nil {
		return HealthStatus{Database: "connected", Healthy: true}
	}

	return HealthStatus{Database: "connected", Tables: countTables, Healthy: true}
}

func (s *healthService) Uptime() time.Duration {
	return time.Since(s.startedAt)
}
