package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                int64     `json:"id"`
	OwnerID           int64     `json:"ownerId"`
	ClientID          int64     `json:"clientId"`
	ClientName        string    `json:"clientName,omitempty"`
	ClientPhone       string    `json:"clientPhone,omitempty"`
	ServiceID         int64     `json:"serviceId"`
	ServiceName       string    `json:"serviceName,omitempty"`
	ScheduledTime     time.Time `json:"scheduledTime"`
	EndTime           time.Time `json:"endTime"`
	DurationMinutes   int       `json:"durationMinutes"`
	DurationOverride  *int      `json:"durationOverride,omitempty"`
	Status            string    `json:"status"`
	FinalPrice        float64   `json:"finalPrice"`
	Discount          *float64  `json:"discount,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	Source            string    `json:"source"`
	BookingLinkID     *int64    `json:"bookingLinkId,omitempty"`
	FinancialRecordID *int64    `json:"financialRecordId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// StatusChangeResponse ответ на смену статуса
type StatusChangeResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Changed     bool                `json:"changed"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                a.ID,
		OwnerID:           a.OwnerID,
		ClientID:          a.ClientID,
		ClientName:        a.ClientName,
		ClientPhone:       a.ClientPhone,
		ServiceID:         a.ServiceID,
		ServiceName:       a.ServiceName,
		ScheduledTime:     a.ScheduledTime,
		EndTime:           a.EndTime(),
		DurationMinutes:   a.DurationMinutes,
		DurationOverride:  a.DurationOverride,
		Status:            string(a.Status),
		FinalPrice:        a.FinalPrice,
		Discount:          a.Discount,
		Notes:             a.Notes,
		Source:            string(a.Source),
		BookingLinkID:     a.BookingLinkID,
		FinancialRecordID: a.FinancialRecordID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// FromDomainAppointments конвертирует список записей
func FromDomainAppointments(appts []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appts)),
		Total:        len(appts),
	}
	for _, a := range appts {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}

// FromStatusChange конвертирует результат смены статуса
func FromStatusChange(a *domain.Appointment, changed bool, warnings []error) *StatusChangeResponse {
	resp := &StatusChangeResponse{
		Appointment: *FromDomainAppointment(a),
		Changed:     changed,
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.Error())
	}
	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
