package public_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// LinkRepository интерфейс репозитория публичных ссылок
type LinkRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.BookingLink, error)
	IncrementViews(ctx context.Context, id int64) error
	IncrementAppointments(ctx context.Context, id int64) error
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetByIDs(ctx context.Context, ownerID int64, ids []int64) ([]*domain.Service, error)
}

// BusinessHoursProvider источник рабочего времени владельца
type BusinessHoursProvider interface {
	Get(ctx context.Context, ownerID int64) (*domain.BusinessHours, error)
}

// SlotLister генератор слотов на день
type SlotLister interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// ClientDirectory справочник клиентов владельца
type ClientDirectory interface {
	FindOrCreateByPhone(ctx context.Context, ownerID int64, name, phone string, email *string) (int64, error)
}

// AppointmentLedger журнал записей
type AppointmentLedger interface {
	Create(ctx context.Context, req appointments.CreateRequest) (*domain.Appointment, error)
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
