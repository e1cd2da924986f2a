package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
)

// UseCase use case для создания записи оператором (внутренняя форма)
// Прошедшее время разрешено: оператор может вносить записи задним числом
type UseCase struct {
	ledger  AppointmentLedger
	clients ClientDirectory
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger AppointmentLedger, clients ClientDirectory, logger Logger) *UseCase {
	return &UseCase{
		ledger:  ledger,
		clients: clients,
		logger:  logger,
	}
}

// Execute выполняет use case создания записи
// Ошибки журнала записей (пересечение, вне рабочего времени, нет услуги) возвращаются как есть
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: owner=%d, service=%d, date=%s, time=%s",
		req.OwnerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	scheduled, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Определяем клиента
	client, err := uc.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Создаем запись через журнал (проверка доступности внутри)
	appt, err := uc.ledger.Create(ctx, appointments.CreateRequest{
		OwnerID:       req.OwnerID,
		ClientID:      client.ID,
		ServiceID:     req.ServiceID,
		ScheduledTime: scheduled,
		Notes:         req.Notes,
		Source:        domain.SourceInternal,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: ledger rejected booking for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	appt.ClientName = client.Name
	appt.ClientPhone = client.Phone

	uc.logger.Info("CreateAppointment: created appointment id=%d for client=%d", appt.ID, client.ID)
	return appt, nil
}

func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, error) {
	if req.ClientID != nil {
		client, err := uc.clients.GetByID(ctx, req.OwnerID, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateAppointment: client id=%d not found for owner=%d", *req.ClientID, req.OwnerID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		return client, nil
	}

	name := strings.TrimSpace(req.ClientName)
	phone := domain.NormalizePhone(req.ClientPhone)
	id, err := uc.clients.FindOrCreateByPhone(ctx, req.OwnerID, name, phone, req.ClientEmail)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve client by phone for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
	}

	return &domain.Client{ID: id, OwnerID: req.OwnerID, Name: name, Phone: phone, Email: req.ClientEmail}, nil
}
