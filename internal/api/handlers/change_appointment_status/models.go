package change_appointment_status

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ChangeStatusRequest HTTP request model
// finalPrice, discount, durationOverride применяются вместе со сменой статуса
type ChangeStatusRequest struct {
	Status           string   `json:"status"`
	FinalPrice       *float64 `json:"finalPrice,omitempty"`
	Discount         *float64 `json:"discount,omitempty"`
	DurationOverride *int     `json:"durationOverride,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ChangeStatusRequest) ToServiceRequest() (appointments.StatusChange, error) {
	status, err := models.ToDomainStatus(r.Status)
	if err != nil {
		return appointments.StatusChange{}, err
	}

	return appointments.StatusChange{
		Status:           status,
		FinalPrice:       r.FinalPrice,
		Discount:         r.Discount,
		DurationOverride: r.DurationOverride,
	}, nil
}
