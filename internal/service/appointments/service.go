package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

const defaultLockWait = 5 * time.Second

// Service журнал записей: единственное место, где записи создаются, меняются и удаляются
// Все изменения одного владельца идут под блокировкой владельца и в SERIALIZABLE транзакции
type Service struct {
	repo      AppointmentRepository
	catalog   ServiceCatalog
	hours     BusinessHoursProvider
	ledger    FinancialLedger
	locker    OwnerLocker
	txManager TransactionManager
	metrics   Metrics
	logger    Logger

	clock    TimeProvider
	loc      *time.Location
	lockWait time.Duration
}

// Option настройка сервиса
type Option func(*Service)

// WithLocation задает часовой пояс, в котором считаются рабочие часы
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLockWait задает, сколько ждать блокировку владельца
func WithLockWait(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lockWait = d
		}
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(p TimeProvider) Option {
	return func(s *Service) {
		if p != nil {
			s.clock = p
		}
	}
}

// NewService создает новый экземпляр журнала записей
func NewService(
	repo AppointmentRepository,
	catalog ServiceCatalog,
	hours BusinessHoursProvider,
	ledger FinancialLedger,
	locker OwnerLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		repo:      repo,
		catalog:   catalog,
		hours:     hours,
		ledger:    ledger,
		locker:    locker,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
		clock:     &RealTimeProvider{},
		loc:       time.UTC,
		lockWait:  defaultLockWait,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create создает запись после проверки рабочего времени и пересечений
// Проверка и вставка выполняются атомарно относительно других изменений того же владельца
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Appointment, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = s.clock.Now()
	}
	start := req.ScheduledTime.In(s.loc)

	s.logger.Info("Create: owner=%d client=%d service=%d at=%s source=%s",
		req.OwnerID, req.ClientID, req.ServiceID, start.Format(time.RFC3339), req.Source)

	svc, err := s.catalog.GetByID(ctx, req.OwnerID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Create: service=%d not found for owner=%d", req.ServiceID, req.OwnerID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: failed to load service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Create - get service: %v", ErrInternal, err)
	}

	unlock, err := s.lockOwner(ctx, req.OwnerID)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}
	defer unlock()

	appt := &domain.Appointment{
		OwnerID:         req.OwnerID,
		ClientID:        req.ClientID,
		ServiceID:       req.ServiceID,
		ScheduledTime:   start,
		DurationMinutes: svc.DurationMinutes,
		Status:          domain.StatusScheduled,
		FinalPrice:      svc.Price,
		Notes:           req.Notes,
		Source:          req.Source,
		BookingLinkID:   req.BookingLinkID,
	}

	var created *domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		candidate := availability.Candidate{
			OwnerID:         req.OwnerID,
			Start:           start,
			DurationMinutes: appt.EffectiveDuration(),
			RequireFuture:   req.RequireFuture,
			Now:             now,
		}
		if err := s.checkCandidate(txCtx, candidate, true); err != nil {
			return err
		}

		var err error
		created, err = s.repo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapWriteError("Create", req.OwnerID, err)
	}

	created.ScheduledTime = created.ScheduledTime.In(s.loc)
	created.ServiceName = svc.Name
	s.metrics.AppointmentCreated(string(req.Source))
	s.logger.Info("Create: created appointment id=%d for owner=%d", created.ID, created.OwnerID)
	return created, nil
}

// Update частично изменяет запись
// Изменение времени, услуги или длительности перепроверяет пересечения (и рабочее время для scheduled)
// Изменение цены завершенной записи пересчитывает парный доход
func (s *Service) Update(ctx context.Context, ownerID, id int64, patch Patch) (*domain.Appointment, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	s.logger.Info("Update: owner=%d id=%d", ownerID, id)

	unlock, err := s.lockOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("Update: %v", err)
		return nil, err
	}
	defer unlock()

	current, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, s.mapWriteError("Update", ownerID, err)
	}

	next := *current
	if err := s.applyPatch(ctx, &next, patch); err != nil {
		return nil, s.mapWriteError("Update", ownerID, err)
	}

	var fin *financialStep
	if next.Status == domain.StatusCompleted && patch.changesIncome() && next.ExpectedIncome() != current.ExpectedIncome() {
		fin, err = s.replaceIncome(ctx, current, &next)
		if err != nil {
			s.logger.Error("Update: failed to resync income for id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - resync income: %v", ErrInternal, err)
		}
	}

	var updated *domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.ensureUnchanged(txCtx, current); err != nil {
			return err
		}

		if patch.changesTiming() && next.OccupiesSlot() {
			candidate := availability.Candidate{
				OwnerID:         ownerID,
				Start:           next.ScheduledTime.In(s.loc),
				DurationMinutes: next.EffectiveDuration(),
				ExcludeID:       &next.ID,
			}
			if err := s.checkCandidate(txCtx, candidate, next.Status == domain.StatusScheduled); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.repo.Update(txCtx, &next)
		if err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		s.compensate(ctx, "Update", fin)
		return nil, s.mapWriteError("Update", ownerID, err)
	}

	updated.ScheduledTime = updated.ScheduledTime.In(s.loc)
	s.logger.Info("Update: updated appointment id=%d", id)
	return updated, nil
}

// Delete удаляет запись вместе с парной финансовой записью, независимо от статуса
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	s.logger.Info("Delete: owner=%d id=%d", ownerID, id)

	unlock, err := s.lockOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("Delete: %v", err)
		return err
	}
	defer unlock()

	current, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return s.mapWriteError("Delete", ownerID, err)
	}

	fin, _, err := s.removeIncome(ctx, current)
	if err != nil {
		s.logger.Error("Delete: failed to remove income for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - remove income: %v", ErrInternal, err)
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		s.compensate(ctx, "Delete", fin)
		return s.mapWriteError("Delete", ownerID, err)
	}

	s.logger.Info("Delete: deleted appointment id=%d", id)
	return nil
}

// Get возвращает запись владельца
func (s *Service) Get(ctx context.Context, ownerID, id int64) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Get: appointment id=%d not found for owner=%d", id, ownerID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Get: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	appt.ScheduledTime = appt.ScheduledTime.In(s.loc)
	return appt, nil
}

// ListForOwner возвращает записи владельца по фильтру, по возрастанию времени
func (s *Service) ListForOwner(ctx context.Context, filter ListFilter) ([]*domain.Appointment, error) {
	if err := validateList(filter); err != nil {
		return nil, err
	}

	appts, err := s.repo.List(ctx, domain.AppointmentsFilter{
		OwnerID: filter.OwnerID,
		From:    filter.From,
		To:      filter.To,
		Status:  filter.Status,
		Search:  strings.TrimSpace(filter.Search),
	})
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%d: %v", filter.OwnerID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}

	for _, a := range appts {
		a.ScheduledTime = a.ScheduledTime.In(s.loc)
	}
	return appts, nil
}

// lockOwner ждет блокировку владельца не дольше lockWait
func (s *Service) lockOwner(ctx context.Context, ownerID int64) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	unlock, err := s.locker.Lock(lockCtx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: owner=%d: %v", ErrOwnerBusy, ownerID, err)
	}
	return unlock, nil
}

// checkCandidate берет advisory lock владельца в транзакции, читает занятые интервалы и проверяет кандидата
// withHours=false проверяет только пересечения (для завершенных записей)
func (s *Service) checkCandidate(txCtx context.Context, c availability.Candidate, withHours bool) error {
	if err := s.repo.LockOwner(txCtx, c.OwnerID); err != nil {
		return fmt.Errorf("lock owner: %w", err)
	}

	existing, err := s.repo.ListOccupying(txCtx, c.OwnerID, c.Start, c.End())
	if err != nil {
		return fmt.Errorf("list occupying: %w", err)
	}

	if !withHours {
		if c.DurationMinutes <= 0 {
			return fmt.Errorf("%w: got %d", availability.ErrInvalidDuration, c.DurationMinutes)
		}
		if conflict := availability.FindConflict(c.OwnerID, c.Start, c.End(), existing, c.ExcludeID); conflict != nil {
			return fmt.Errorf("%w: appointment id=%d", availability.ErrConflict, conflict.ID)
		}
		return nil
	}

	hours, err := s.hours.Get(txCtx, c.OwnerID)
	if err != nil {
		return fmt.Errorf("business hours: %w", err)
	}

	return availability.Check(c, hours, existing)
}

// ensureUnchanged перечитывает запись под FOR UPDATE и проверяет, что ее не изменили параллельно
func (s *Service) ensureUnchanged(txCtx context.Context, before *domain.Appointment) error {
	fresh, err := s.repo.GetByID(txCtx, before.OwnerID, before.ID)
	if err != nil {
		return fmt.Errorf("reload appointment: %w", err)
	}
	if fresh.Status != before.Status || !fresh.UpdatedAt.Equal(before.UpdatedAt) {
		return fmt.Errorf("%w: appointment id=%d was modified concurrently", availability.ErrConflict, before.ID)
	}
	return nil
}

// applyPatch переносит изменения патча в запись; смена услуги обновляет плановую длительность и цену
func (s *Service) applyPatch(ctx context.Context, a *domain.Appointment, p Patch) error {
	if p.ServiceID != nil && *p.ServiceID != a.ServiceID {
		svc, err := s.catalog.GetByID(ctx, a.OwnerID, *p.ServiceID)
		if err != nil {
			return fmt.Errorf("get service: %w", err)
		}
		a.ServiceID = svc.ID
		a.ServiceName = svc.Name
		a.DurationMinutes = svc.DurationMinutes
		if p.FinalPrice == nil {
			a.FinalPrice = svc.Price
		}
	}
	if p.ClientID != nil {
		a.ClientID = *p.ClientID
	}
	if p.ScheduledTime != nil {
		a.ScheduledTime = p.ScheduledTime.In(s.loc)
	}
	if p.DurationOverride != nil {
		v := *p.DurationOverride
		a.DurationOverride = &v
	}
	if p.ClearDurationOverride {
		a.DurationOverride = nil
	}
	if p.FinalPrice != nil {
		a.FinalPrice = *p.FinalPrice
	}
	if p.Discount != nil {
		v := *p.Discount
		a.Discount = &v
	}
	if p.Notes != nil {
		v := *p.Notes
		a.Notes = &v
	}
	return nil
}

// mapWriteError переводит ошибки транзакции записи в ошибки сервиса
func (s *Service) mapWriteError(op string, ownerID int64, err error) error {
	switch {
	case errors.Is(err, availability.ErrConflict),
		errors.Is(err, availability.ErrOutOfHours),
		errors.Is(err, availability.ErrPastTime),
		errors.Is(err, availability.ErrInvalidDuration):
		s.metrics.BookingRejected(availability.Reason(err))
		s.logger.Warn("%s: rejected for owner=%d: %v", op, ownerID, err)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure), txmanager.IsSerializationFailure(err):
		s.metrics.BookingRejected("conflict")
		s.logger.Warn("%s: serialization failure for owner=%d: %v", op, ownerID, err)
		return fmt.Errorf("%w: %v", availability.ErrConflict, err)
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("%s: appointment not found for owner=%d", op, ownerID)
		return ErrAppointmentNotFound
	case errors.Is(err, serviceRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service not found for owner=%d", op, ownerID)
		return ErrServiceNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
		return err
	default:
		s.logger.Error("%s: failed for owner=%d: %v", op, ownerID, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
