package update_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	errInvalidDate      = errors.New("invalid date format")
	errIncompleteMoment = errors.New("date and startTime must be provided together")
)

// UpdateAppointmentRequest HTTP request model, все поля опциональны
// Перенос задается парой date + startTime
type UpdateAppointmentRequest struct {
	ClientID              *int64   `json:"clientId,omitempty"`
	ServiceID             *int64   `json:"serviceId,omitempty"`
	Date                  *string  `json:"date,omitempty"`
	StartTime             *string  `json:"startTime,omitempty"`
	DurationOverride      *int     `json:"durationOverride,omitempty"`
	ClearDurationOverride bool     `json:"clearDurationOverride,omitempty"`
	FinalPrice            *float64 `json:"finalPrice,omitempty"`
	Discount              *float64 `json:"discount,omitempty"`
	Notes                 *string  `json:"notes,omitempty"`
}

// ToServicePatch конвертирует HTTP запрос в патч сервиса
func (r *UpdateAppointmentRequest) ToServicePatch(loc *time.Location) (appointments.Patch, error) {
	patch := appointments.Patch{
		ClientID:              r.ClientID,
		ServiceID:             r.ServiceID,
		DurationOverride:      r.DurationOverride,
		ClearDurationOverride: r.ClearDurationOverride,
		FinalPrice:            r.FinalPrice,
		Discount:              r.Discount,
		Notes:                 r.Notes,
	}

	if (r.Date == nil) != (r.StartTime == nil) {
		return patch, errIncompleteMoment
	}
	if r.Date == nil {
		return patch, nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, *r.Date, loc)
	if err != nil {
		return patch, errInvalidDate
	}
	start, err := types.NewTimeStringFromString(*r.StartTime)
	if err != nil {
		return patch, err
	}
	scheduled, err := start.OnDate(date)
	if err != nil {
		return patch, err
	}
	patch.ScheduledTime = &scheduled

	return patch, nil
}
