package businesshours

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BusinessHoursRepository интерфейс репозитория рабочих часов
type BusinessHoursRepository interface {
	GetByOwner(ctx context.Context, ownerID int64) (*domain.BusinessHours, error)
	CreateIfAbsent(ctx context.Context, hours *domain.BusinessHours) error
	Upsert(ctx context.Context, hours *domain.BusinessHours) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
