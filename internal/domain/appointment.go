package domain

import "time"

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// IsValid проверяет, что статус из допустимого набора
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// OccupiesSlot возвращает true для статусов, которые занимают интервал времени
func (s AppointmentStatus) OccupiesSlot() bool {
	return s == StatusScheduled || s == StatusCompleted
}

// AppointmentSource откуда пришла запись
type AppointmentSource string

const (
	SourceInternal   AppointmentSource = "internal"
	SourcePublicLink AppointmentSource = "public_link"
)

// Appointment запись клиента на услугу
type Appointment struct {
	ID                int64
	OwnerID           int64
	ClientID          int64
	ServiceID         int64
	ScheduledTime     time.Time
	DurationMinutes   int  // длительность услуги на момент записи
	DurationOverride  *int // фактическая длительность, если отличается от плановой
	Status            AppointmentStatus
	FinalPrice        float64
	Discount          *float64
	Notes             *string
	Source            AppointmentSource
	BookingLinkID     *int64
	FinancialRecordID *int64 // обратная ссылка на доход

	// Денормализованные данные для списков
	ClientName  string
	ClientPhone string
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDuration длительность, по которой считается конец интервала
func (a *Appointment) EffectiveDuration() int {
	if a.DurationOverride != nil && *a.DurationOverride > 0 {
		return *a.DurationOverride
	}
	return a.DurationMinutes
}

// EndTime момент окончания записи (не включительно)
func (a *Appointment) EndTime() time.Time {
	return a.ScheduledTime.Add(time.Duration(a.EffectiveDuration()) * time.Minute)
}

// OccupiesSlot возвращает true, если запись участвует в проверке пересечений
func (a *Appointment) OccupiesSlot() bool {
	return a.Status.OccupiesSlot()
}

// ExpectedIncome сумма дохода при завершении: цена минус скидка, но не меньше нуля
func (a *Appointment) ExpectedIncome() float64 {
	amount := a.FinalPrice
	if a.Discount != nil {
		amount -= *a.Discount
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// AppointmentsFilter фильтр для списка записей владельца
type AppointmentsFilter struct {
	OwnerID int64              // Обязательный параметр
	From    *time.Time         // Начало периода включительно
	To      *time.Time         // Конец периода не включительно
	Status  *AppointmentStatus // Фильтр по статусу
	Search  string             // Поиск по имени/телефону клиента и заметкам
}
