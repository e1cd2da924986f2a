package businesshours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/businesshours"
	"github.com/m04kA/SMC-SchedulingService/internal/service/businesshours/models"
)

// Service сервис рабочих часов владельца
type Service struct {
	repo   BusinessHoursRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(repo BusinessHoursRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает рабочие часы владельца
// При первом обращении сохраняет настройки по умолчанию (09:00-18:00, воскресенье выходной)
func (s *Service) Get(ctx context.Context, ownerID int64) (*domain.BusinessHours, error) {
	hours, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return hours, nil
	}
	if !errors.Is(err, hoursRepo.ErrBusinessHoursNotFound) {
		s.logger.Error("Get: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Get: no business hours for owner=%d, creating defaults", ownerID)
	if err := s.repo.CreateIfAbsent(ctx, domain.DefaultBusinessHours(ownerID)); err != nil {
		s.logger.Error("Get: failed to create defaults for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Get - create defaults: %w", ErrInternal, err)
	}

	// перечитываем: параллельный запрос мог создать настройки раньше нас
	hours, err = s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Get: failed to reload business hours for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Get - reload: %w", ErrInternal, err)
	}
	return hours, nil
}

// Update изменяет рабочие часы владельца
// Существующие записи не перепроверяются: новые часы действуют для новых записей
func (s *Service) Update(ctx context.Context, ownerID int64, req *models.UpdateBusinessHoursRequest) (*domain.BusinessHours, error) {
	s.logger.Info("Update: updating business hours for owner=%d", ownerID)

	current, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	next, err := req.Apply(current)
	if err != nil {
		s.logger.Warn("Update: invalid time for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := next.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Upsert(ctx, next); err != nil {
		s.logger.Error("Update: failed to save business hours for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Update - upsert: %w", ErrInternal, err)
	}

	updated, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Update: failed to reload business hours for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Update - reload: %w", ErrInternal, err)
	}

	s.logger.Info("Update: business hours updated for owner=%d", ownerID)
	return updated, nil
}
