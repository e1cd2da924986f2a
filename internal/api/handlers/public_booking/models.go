package public_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	hoursModels "github.com/m04kA/SMC-SchedulingService/internal/service/businesshours/models"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var errInvalidDate = errors.New("invalid date format")

// ServiceResponse услуга, доступная по ссылке
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// BookingInfoResponse данные страницы записи
// Счетчики и настройки владельца наружу не отдаются
type BookingInfoResponse struct {
	Title         string                             `json:"title"`
	Services      []ServiceResponse                  `json:"services"`
	BusinessHours *hoursModels.BusinessHoursResponse `json:"businessHours"`
	FirstDay      string                             `json:"firstDay"`
	LastDay       string                             `json:"lastDay"`
}

// SubmitRequest HTTP request model формы записи
type SubmitRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"` // "2026-03-10"
	Time      string  `json:"time"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
}

// SubmitResponse подтверждение записи для клиента
type SubmitResponse struct {
	ID            int64     `json:"id"`
	ServiceName   string    `json:"serviceName,omitempty"`
	ScheduledTime time.Time `json:"scheduledTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
}

// ToForm конвертирует HTTP запрос в форму use case
func (r *SubmitRequest) ToForm(loc *time.Location) (*publicBooking.BookingForm, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, errInvalidDate
	}

	start, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &publicBooking.BookingForm{
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		ServiceID: r.ServiceID,
		Date:      date,
		Time:      start,
		Notes:     r.Notes,
	}, nil
}

// FromBookingInfo конвертирует данные use case в HTTP response
func FromBookingInfo(info *publicBooking.BookingInfo) *BookingInfoResponse {
	services := make([]ServiceResponse, 0, len(info.Services))
	for _, s := range info.Services {
		services = append(services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	return &BookingInfoResponse{
		Title:         info.Link.Title,
		Services:      services,
		BusinessHours: hoursModels.FromDomainBusinessHours(info.Hours),
		FirstDay:      info.FirstDay.Format(domain.DateFormat),
		LastDay:       info.LastDay.Format(domain.DateFormat),
	}
}

// FromAppointment формирует подтверждение записи
func FromAppointment(a *domain.Appointment) *SubmitResponse {
	return &SubmitResponse{
		ID:            a.ID,
		ServiceName:   a.ServiceName,
		ScheduledTime: a.ScheduledTime,
		EndTime:       a.EndTime(),
		Status:        string(a.Status),
	}
}
