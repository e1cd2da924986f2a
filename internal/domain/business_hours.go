package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidBusinessHours некорректная конфигурация рабочего времени
	ErrInvalidBusinessHours = errors.New("domain: invalid business hours")
)

// LunchBreak обеденный перерыв
type LunchBreak struct {
	Start types.TimeString
	End   types.TimeString
}

// BusinessHours рабочее время владельца
// Один документ на владельца, создается с дефолтами при первом чтении
type BusinessHours struct {
	OwnerID    int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	DaysOff    []int // 0 = воскресенье ... 6 = суббота
	LunchBreak *LunchBreak
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultBusinessHours конфигурация по умолчанию: 09:00-18:00, воскресенье выходной
func DefaultBusinessHours(ownerID int64) *BusinessHours {
	return &BusinessHours{
		OwnerID:   ownerID,
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
		DaysOff:   append([]int(nil), DefaultDaysOff...),
	}
}

// Validate проверяет конфигурацию
func (b *BusinessHours) Validate() error {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidBusinessHours, err)
	}
	end, err := b.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidBusinessHours, err)
	}
	if start >= end {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidBusinessHours, b.StartTime, b.EndTime)
	}

	seen := make(map[int]struct{}, len(b.DaysOff))
	for _, d := range b.DaysOff {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day off %d out of range 0..6", ErrInvalidBusinessHours, d)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: duplicate day off %d", ErrInvalidBusinessHours, d)
		}
		seen[d] = struct{}{}
	}

	if b.LunchBreak == nil {
		return nil
	}

	lunchStart, err := b.LunchBreak.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: lunch start: %v", ErrInvalidBusinessHours, err)
	}
	lunchEnd, err := b.LunchBreak.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: lunch end: %v", ErrInvalidBusinessHours, err)
	}
	if lunchStart >= lunchEnd {
		return fmt.Errorf("%w: lunch start %s must be before lunch end %s", ErrInvalidBusinessHours, b.LunchBreak.Start, b.LunchBreak.End)
	}
	if lunchStart < start || lunchEnd > end {
		return fmt.Errorf("%w: lunch break must lie within working hours", ErrInvalidBusinessHours)
	}

	return nil
}

// IsDayOff возвращает true, если день недели выходной
func (b *BusinessHours) IsDayOff(weekday time.Weekday) bool {
	for _, d := range b.DaysOff {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// Window возвращает рабочее окно в минутах с полуночи
func (b *BusinessHours) Window() (start, end int, err error) {
	start, err = b.StartTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	end, err = b.EndTime.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// LunchWindow возвращает обеденный перерыв в минутах, ok=false если перерыва нет
func (b *BusinessHours) LunchWindow() (start, end int, ok bool, err error) {
	if b.LunchBreak == nil {
		return 0, 0, false, nil
	}
	start, err = b.LunchBreak.Start.Minutes()
	if err != nil {
		return 0, 0, false, err
	}
	end, err = b.LunchBreak.End.Minutes()
	if err != nil {
		return 0, 0, false, err
	}
	return start, end, true, nil
}
