package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс чтения занятых интервалов
type AppointmentRepository interface {
	ListOccupying(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Service, error)
}

// BusinessHoursProvider источник рабочего времени владельца
type BusinessHoursProvider interface {
	Get(ctx context.Context, ownerID int64) (*domain.BusinessHours, error)
}

// Metrics счетчик показанных слотов
type Metrics interface {
	SlotsObserved(available, taken int)
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
