package domain

import "time"

// BookingLink публичная ссылка для самостоятельной записи клиентов
type BookingLink struct {
	ID               int64
	OwnerID          int64
	Slug             string
	Title            string
	Active           bool
	ServiceIDs       []int64
	DaysInAdvance    int
	ViewCount        int64
	AppointmentCount int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AllowsService проверяет, что услуга доступна для записи по ссылке
func (l *BookingLink) AllowsService(serviceID int64) bool {
	for _, id := range l.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// WithinLeadTime проверяет, что день попадает в окно [today, today+DaysInAdvance]
// Сравниваются только календарные даты в локации today
func (l *BookingLink) WithinLeadTime(day, today time.Time) bool {
	first := StartOfDay(today)
	last := first.AddDate(0, 0, l.DaysInAdvance)
	d := StartOfDay(day.In(today.Location()))
	return !d.Before(first) && !d.After(last)
}

// StartOfDay возвращает полночь того же дня в той же локации
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
