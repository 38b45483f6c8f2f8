package service

import (
	"context"
	"time"

	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// MaintenanceService runs periodic housekeeping
type MaintenanceService struct {
	userRepo repository.UserRepository
	stateTTL time.Duration
	logger   *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(userRepo repository.UserRepository, stateTTL time.Duration, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		userRepo: userRepo,
		stateTTL: stateTTL,
		logger:   logger,
	}
}

// ResetStaleStates returns users stuck in a pending state for longer than the TTL to idle
func (s *MaintenanceService) ResetStaleStates(ctx context.Context) error {
	s.logger.Info("Starting reset of stale states", zap.Duration("state_ttl", s.stateTTL))

	reset, err := s.userRepo.ResetStaleStates(ctx, s.stateTTL)
	if err != nil {
		s.logger.Error("Failed to reset stale states", zap.Error(err))
		return err
	}

	s.logger.Info("Stale states reset", zap.Int64("users", reset))
	return nil
}
