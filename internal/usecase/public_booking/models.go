package public_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingInfo данные для страницы записи по ссылке
// Содержит только то, что нужно клиенту: ссылку, доступные услуги и рабочие часы
type BookingInfo struct {
	Link     *domain.BookingLink
	Services []*domain.Service
	Hours    *domain.BusinessHours
	FirstDay time.Time // сегодня
	LastDay  time.Time // сегодня + DaysInAdvance
}

// BookingForm форма записи клиента
type BookingForm struct {
	Name      string
	Phone     string
	Email     *string
	ServiceID int64
	Date      time.Time        // дата (без времени)
	Time      types.TimeString // время начала
	Notes     *string
}
