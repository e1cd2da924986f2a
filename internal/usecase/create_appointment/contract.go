package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
)

// AppointmentLedger журнал записей
type AppointmentLedger interface {
	Create(ctx context.Context, req appointments.CreateRequest) (*domain.Appointment, error)
}

// ClientDirectory справочник клиентов владельца
type ClientDirectory interface {
	FindOrCreateByPhone(ctx context.Context, ownerID int64, name, phone string, email *string) (int64, error)
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Client, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
