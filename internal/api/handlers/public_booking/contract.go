package public_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
)

type PublicBookingUseCase interface {
	GetBookingInfo(ctx context.Context, slug string) (*publicBooking.BookingInfo, error)
	GetSlots(ctx context.Context, slug string, serviceID int64, date time.Time) (*getAvailableSlots.Response, error)
	Submit(ctx context.Context, slug string, form *publicBooking.BookingForm) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
