package get_business_hours

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BusinessHoursService interface {
	Get(ctx context.Context, ownerID int64) (*domain.BusinessHours, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
