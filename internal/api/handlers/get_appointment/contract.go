package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type AppointmentService interface {
	Get(ctx context.Context, ownerID, id int64) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
