package update_business_hours

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/businesshours/models"
)

type BusinessHoursService interface {
	Update(ctx context.Context, ownerID int64, req *models.UpdateBusinessHoursRequest) (*domain.BusinessHours, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
