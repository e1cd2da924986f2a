package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
)

// UseCase use case для получения слотов на день
// Используется календарем владельца и публичной записью (с RequireFuture)
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         ServiceCatalog
	hours           BusinessHoursProvider
	metrics         Metrics
	timeProvider    TimeProvider
	defaultStep     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog ServiceCatalog,
	hours BusinessHoursProvider,
	metrics Metrics,
	defaultStep int,
	logger Logger,
) *UseCase {
	if defaultStep <= 0 {
		defaultStep = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		hours:           hours,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		defaultStep:     defaultStep,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(p TimeProvider) *UseCase {
	uc.timeProvider = p
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: owner=%d, service=%d, date=%s, step=%d, future=%t",
		req.OwnerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Step, req.RequireFuture)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	step := req.Step
	if step == 0 {
		step = uc.defaultStep
	}
	day := domain.StartOfDay(req.Date)

	// 2. Получаем услугу
	service, err := uc.catalog.GetByID(ctx, req.OwnerID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for owner=%d", req.ServiceID, req.OwnerID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Получаем рабочие часы
	hours, err := uc.hours.Get(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get business hours for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	// 4. Получаем записи, пересекающиеся с днем (включая начавшиеся накануне)
	existing, err := uc.appointmentRepo.ListOccupying(ctx, req.OwnerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты той же проверкой, что и при фиксации записи
	slots, err := availability.Generate(availability.GenerateRequest{
		OwnerID:         req.OwnerID,
		Day:             day,
		DurationMinutes: service.DurationMinutes,
		Hours:           hours,
		Existing:        existing,
		Step:            step,
		RequireFuture:   req.RequireFuture,
		Now:             uc.timeProvider.Now(),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	available := domain.CountAvailable(slots)
	uc.metrics.SlotsObserved(available, len(slots)-available)

	uc.logger.Info("GetAvailableSlots: owner=%d, date=%s - %d slots, %d available",
		req.OwnerID, day.Format(domain.DateFormat), len(slots), available)

	return &Response{
		Date:            day,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Step:            step,
		Slots:           slots,
		AvailableCount:  available,
	}, nil
}
