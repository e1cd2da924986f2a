package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	financialRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/financial"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// financialStep выполненный шаг в финансовом журнале и его отмена
// Запись и финансовый журнал меняются двумя отдельными операциями:
// если вторая не удалась, первую откатываем через undo
type financialStep struct {
	name string
	undo func(ctx context.Context) error
}

// ChangeStatus меняет статус записи и синхронизирует доход
//
//	-> completed: добавляет доход (FinalPrice - Discount, не меньше 0), повторно не создает
//	completed -> другой: удаляет парный доход; если его нет - предупреждение ErrOrphanedFinancialRecord
//	canceled/no_show -> scheduled/completed: перепроверка рабочего времени и пересечений как у новой записи
//	X -> X: ничего не меняет
func (s *Service) ChangeStatus(ctx context.Context, ownerID, id int64, change StatusChange) (*StatusChangeResult, error) {
	if err := validateStatusChange(change); err != nil {
		return nil, err
	}

	s.logger.Info("ChangeStatus: owner=%d id=%d to=%s", ownerID, id, change.Status)

	unlock, err := s.lockOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("ChangeStatus: %v", err)
		return nil, err
	}
	defer unlock()

	current, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, s.mapWriteError("ChangeStatus", ownerID, err)
	}
	current.ScheduledTime = current.ScheduledTime.In(s.loc)

	from, to := current.Status, change.Status
	if from == to {
		s.logger.Info("ChangeStatus: id=%d already %s, nothing to do", id, to)
		return &StatusChangeResult{Appointment: current, Changed: false}, nil
	}

	next := *current
	next.Status = to
	if change.FinalPrice != nil {
		next.FinalPrice = *change.FinalPrice
	}
	if change.Discount != nil {
		v := *change.Discount
		next.Discount = &v
	}
	overrideChanged := false
	if change.DurationOverride != nil {
		v := *change.DurationOverride
		next.DurationOverride = &v
		overrideChanged = true
	}

	var (
		fin      *financialStep
		warnings []error
	)
	switch {
	case to == domain.StatusCompleted:
		fin, err = s.appendIncome(ctx, &next)
	case from == domain.StatusCompleted:
		var found bool
		fin, found, err = s.removeIncome(ctx, current)
		next.FinancialRecordID = nil
		if err == nil && !found {
			warnings = append(warnings, fmt.Errorf("%w: appointment id=%d", ErrOrphanedFinancialRecord, id))
		}
	}
	if err != nil {
		s.logger.Error("ChangeStatus: financial step failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ChangeStatus - financial step: %v", ErrInternal, err)
	}

	reopen := !from.OccupiesSlot() && to.OccupiesSlot()

	var updated *domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.ensureUnchanged(txCtx, current); err != nil {
			return err
		}

		candidate := availability.Candidate{
			OwnerID:         ownerID,
			Start:           next.ScheduledTime,
			DurationMinutes: next.EffectiveDuration(),
			ExcludeID:       &next.ID,
		}
		switch {
		case reopen:
			if err := s.checkCandidate(txCtx, candidate, true); err != nil {
				return err
			}
		case overrideChanged && to.OccupiesSlot():
			if err := s.checkCandidate(txCtx, candidate, to == domain.StatusScheduled); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.repo.Update(txCtx, &next)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return nil
	})
	if err != nil {
		s.compensate(ctx, "ChangeStatus", fin)
		return nil, s.mapWriteError("ChangeStatus", ownerID, err)
	}

	updated.ScheduledTime = updated.ScheduledTime.In(s.loc)
	s.metrics.StatusTransition(string(from), string(to))
	for _, w := range warnings {
		if errors.Is(w, ErrOrphanedFinancialRecord) {
			s.metrics.OrphanedFinancialRecord()
		}
		s.logger.Warn("ChangeStatus: id=%d %s -> %s: %v", id, from, to, w)
	}

	s.logger.Info("ChangeStatus: id=%d %s -> %s", id, from, to)
	return &StatusChangeResult{Appointment: updated, Changed: true, Warnings: warnings}, nil
}

// appendIncome добавляет доход за запись; существующий доход переиспользуется
func (s *Service) appendIncome(ctx context.Context, a *domain.Appointment) (*financialStep, error) {
	existing, err := s.ledger.GetByAppointmentID(ctx, a.OwnerID, a.ID)
	switch {
	case err == nil:
		s.logger.Warn("appendIncome: record id=%d already exists for appointment id=%d, reusing", existing.ID, a.ID)
		a.FinancialRecordID = &existing.ID
		return nil, nil
	case !errors.Is(err, financialRepo.ErrRecordNotFound):
		return nil, fmt.Errorf("lookup income: %w", err)
	}

	recordID, err := s.ledger.AppendIncome(ctx, a.OwnerID, a.ExpectedIncome(), a.ID, incomeMemo(a))
	if err != nil {
		if errors.Is(err, financialRepo.ErrRecordExists) {
			// запись появилась между проверкой и вставкой
			rec, getErr := s.ledger.GetByAppointmentID(ctx, a.OwnerID, a.ID)
			if getErr != nil {
				return nil, fmt.Errorf("lookup income after conflict: %w", getErr)
			}
			a.FinancialRecordID = &rec.ID
			return nil, nil
		}
		return nil, fmt.Errorf("append income: %w", err)
	}

	a.FinancialRecordID = ptr.Ptr(recordID)
	ownerID, apptID := a.OwnerID, a.ID
	return &financialStep{
		name: "append income",
		undo: func(ctx context.Context) error {
			return s.ledger.DeleteByAppointmentID(ctx, ownerID, apptID)
		},
	}, nil
}

// removeIncome удаляет парный доход по обратной ссылке; found=false, если дохода не было
func (s *Service) removeIncome(ctx context.Context, a *domain.Appointment) (*financialStep, bool, error) {
	rec, err := s.ledger.GetByAppointmentID(ctx, a.OwnerID, a.ID)
	if err != nil {
		if errors.Is(err, financialRepo.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup income: %w", err)
	}

	if err := s.ledger.DeleteByAppointmentID(ctx, a.OwnerID, a.ID); err != nil {
		if errors.Is(err, financialRepo.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("delete income: %w", err)
	}

	ownerID, apptID := a.OwnerID, a.ID
	amount, memo := rec.Amount, rec.Memo
	return &financialStep{
		name: "remove income",
		undo: func(ctx context.Context) error {
			_, err := s.ledger.AppendIncome(ctx, ownerID, amount, apptID, memo)
			return err
		},
	}, true, nil
}

// replaceIncome пересчитывает доход завершенной записи после изменения цены или скидки
func (s *Service) replaceIncome(ctx context.Context, before, after *domain.Appointment) (*financialStep, error) {
	removed, _, err := s.removeIncome(ctx, before)
	if err != nil {
		return nil, err
	}

	added, err := s.appendIncome(ctx, after)
	if err != nil {
		s.compensate(ctx, "replaceIncome", removed)
		return nil, err
	}

	return &financialStep{
		name: "replace income",
		undo: func(ctx context.Context) error {
			if added != nil {
				if err := added.undo(ctx); err != nil {
					return err
				}
			}
			if removed != nil {
				return removed.undo(ctx)
			}
			return nil
		},
	}, nil
}

// compensate откатывает финансовый шаг; отмена не зависит от отмены исходного запроса
func (s *Service) compensate(ctx context.Context, op string, step *financialStep) {
	if step == nil || step.undo == nil {
		return
	}

	if err := step.undo(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("%s: compensation of %q failed: %v", op, step.name, err)
		return
	}
	s.logger.Warn("%s: compensated %q", op, step.name)
}

func incomeMemo(a *domain.Appointment) string {
	if a.ServiceName != "" {
		return fmt.Sprintf("appointment #%d: %s", a.ID, a.ServiceName)
	}
	return fmt.Sprintf("appointment #%d", a.ID)
}
