package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Appointment, error)
	ListOccupying(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	Delete(ctx context.Context, ownerID, id int64) error
	LockOwner(ctx context.Context, ownerID int64) error
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Service, error)
}

// BusinessHoursProvider источник рабочего времени владельца (создает дефолт при первом чтении)
type BusinessHoursProvider interface {
	Get(ctx context.Context, ownerID int64) (*domain.BusinessHours, error)
}

// FinancialLedger внешний финансовый журнал
type FinancialLedger interface {
	AppendIncome(ctx context.Context, ownerID int64, amount float64, appointmentID int64, memo string) (int64, error)
	GetByAppointmentID(ctx context.Context, ownerID, appointmentID int64) (*domain.FinancialRecord, error)
	DeleteByAppointmentID(ctx context.Context, ownerID, appointmentID int64) error
}

// OwnerLocker сериализует изменения записей одного владельца
type OwnerLocker interface {
	Lock(ctx context.Context, ownerID int64) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики движка записи
type Metrics interface {
	AppointmentCreated(source string)
	BookingRejected(reason string)
	StatusTransition(from, to string)
	OrphanedFinancialRecord()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
