package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// Клиент задается либо clientId, либо clientName + clientPhone
type CreateAppointmentRequest struct {
	ClientID    *int64  `json:"clientId,omitempty"`
	ClientName  string  `json:"clientName,omitempty"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"`      // "2026-03-10"
	StartTime   string  `json:"startTime"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата разбирается в часовом поясе владельца
func (r *CreateAppointmentRequest) ToUseCaseRequest(ownerID int64, loc *time.Location) (*createAppointment.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		OwnerID:     ownerID,
		ClientID:    r.ClientID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   startTime,
		Notes:       r.Notes,
	}, nil
}
