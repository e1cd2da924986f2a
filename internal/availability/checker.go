package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Candidate кандидат на запись
type Candidate struct {
	OwnerID         int64
	Start           time.Time
	DurationMinutes int
	ExcludeID       *int64 // запись, которую не учитываем (при переносе самой себя)
	RequireFuture   bool   // только для публичной записи
	Now             time.Time
}

// End момент окончания кандидата
func (c Candidate) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// Check единственная проверка доступности интервала
// Используется и при показе слотов, и при фиксации записи
// Порядок: будущее (если требуется) -> рабочее время -> пересечения
func Check(c Candidate, hours *domain.BusinessHours, existing []*domain.Appointment) error {
	if c.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, c.DurationMinutes)
	}

	if c.RequireFuture && !IsFuture(c.Start, c.Now) {
		return ErrPastTime
	}

	if err := CheckBusinessHours(hours, c.Start.Weekday(), types.MinutesOfDay(c.Start), c.DurationMinutes); err != nil {
		return err
	}

	if conflict := FindConflict(c.OwnerID, c.Start, c.End(), existing, c.ExcludeID); conflict != nil {
		return fmt.Errorf("%w: appointment id=%d at %s", ErrConflict, conflict.ID, conflict.ScheduledTime.Format(domain.TimeFormat))
	}

	return nil
}

// IsAvailable булева форма Check
func IsAvailable(c Candidate, hours *domain.BusinessHours, existing []*domain.Appointment) bool {
	return Check(c, hours, existing) == nil
}

// CheckBusinessHours проверяет, что интервал [start, start+duration) помещается в рабочее время
// Интервал, переходящий через полночь, всегда вне рабочего времени
func CheckBusinessHours(hours *domain.BusinessHours, weekday time.Weekday, startMinutes, durationMinutes int) error {
	if hours.IsDayOff(weekday) {
		return fmt.Errorf("%w: %s", ErrDayOff, weekday)
	}

	open, closing, err := hours.Window()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideWorkingHours, err)
	}

	end := startMinutes + durationMinutes
	if startMinutes < open || end > closing {
		return fmt.Errorf("%w: %s-%s", ErrOutsideWorkingHours, hours.StartTime, hours.EndTime)
	}

	lunchStart, lunchEnd, hasLunch, err := hours.LunchWindow()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLunchBreak, err)
	}
	if hasLunch && types.Overlaps(startMinutes, end, lunchStart, lunchEnd) {
		return fmt.Errorf("%w: %s-%s", ErrLunchBreak, hours.LunchBreak.Start, hours.LunchBreak.End)
	}

	return nil
}

// IsWithinBusinessHours булева форма CheckBusinessHours
func IsWithinBusinessHours(hours *domain.BusinessHours, weekday time.Weekday, startMinutes, durationMinutes int) bool {
	return CheckBusinessHours(hours, weekday, startMinutes, durationMinutes) == nil
}

// IsFuture начало строго позже now
func IsFuture(candidate, now time.Time) bool {
	return candidate.After(now)
}

// HasConflict есть ли пересечение с занимающими время записями того же владельца
func HasConflict(ownerID int64, start, end time.Time, existing []*domain.Appointment, excludeID *int64) bool {
	return FindConflict(ownerID, start, end, existing, excludeID) != nil
}

// FindConflict возвращает первую запись, пересекающуюся с [start, end)
func FindConflict(ownerID int64, start, end time.Time, existing []*domain.Appointment, excludeID *int64) *domain.Appointment {
	for _, a := range existing {
		if a == nil || a.OwnerID != ownerID || !a.OccupiesSlot() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if types.OverlapsTime(start, end, a.ScheduledTime, a.EndTime()) {
			return a
		}
	}
	return nil
}
