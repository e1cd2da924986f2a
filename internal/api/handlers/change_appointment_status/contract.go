package change_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
)

type AppointmentService interface {
	ChangeStatus(ctx context.Context, ownerID, id int64, change appointments.StatusChange) (*appointments.StatusChangeResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
