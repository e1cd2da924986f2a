package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfHours интервал не помещается в рабочее время владельца
	ErrOutOfHours = errors.New("availability: outside of business hours")

	// ErrDayOff день недели выходной
	ErrDayOff = fmt.Errorf("%w: day off", ErrOutOfHours)

	// ErrOutsideWorkingHours интервал выходит за рабочее окно
	ErrOutsideWorkingHours = fmt.Errorf("%w: outside working window", ErrOutOfHours)

	// ErrLunchBreak интервал пересекается с обеденным перерывом
	ErrLunchBreak = fmt.Errorf("%w: intersects lunch break", ErrOutOfHours)

	// ErrPastTime начало записи не в будущем
	ErrPastTime = errors.New("availability: start time is in the past")

	// ErrConflict интервал пересекается с существующей записью
	ErrConflict = errors.New("availability: time slot conflicts with another appointment")

	// ErrInvalidDuration длительность не положительна
	ErrInvalidDuration = errors.New("availability: duration must be positive")
)

// Reason короткий код причины отказа для метрик и логов
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrPastTime):
		return "past_time"
	case errors.Is(err, ErrDayOff):
		return "day_off"
	case errors.Is(err, ErrLunchBreak):
		return "lunch_break"
	case errors.Is(err, ErrOutsideWorkingHours):
		return "outside_hours"
	case errors.Is(err, ErrOutOfHours):
		return "out_of_hours"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	default:
		return "other"
	}
}
