package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GenerateRequest параметры генерации слотов на день
type GenerateRequest struct {
	OwnerID         int64
	Day             time.Time // берется только дата, в локации Day
	DurationMinutes int
	Hours           *domain.BusinessHours
	Existing        []*domain.Appointment
	Step            int // 0 = domain.DefaultSlotStepMinutes
	RequireFuture   bool
	Now             time.Time
}

// Generate перечисляет слоты на день с шагом Step
//
// Курсор начинается со времени открытия и идет, пока интервал помещается до закрытия.
// Если курсор попал в обеденный перерыв, он переносится на конец перерыва.
// Каждый слот помечается результатом Check, поэтому показ и фиксация не расходятся.
// В конце добавляется слот, заканчивающийся ровно в момент закрытия,
// если он позже последнего выданного и не начинается в перерыве.
func Generate(req GenerateRequest) ([]domain.TimeSlot, error) {
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, req.DurationMinutes)
	}

	step := req.Step
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}

	slots := make([]domain.TimeSlot, 0)
	if req.Hours.IsDayOff(req.Day.Weekday()) {
		return slots, nil
	}

	open, closing, err := req.Hours.Window()
	if err != nil {
		return nil, err
	}
	lunchStart, lunchEnd, hasLunch, err := req.Hours.LunchWindow()
	if err != nil {
		return nil, err
	}

	inLunch := func(m int) bool {
		return hasLunch && m >= lunchStart && m < lunchEnd
	}

	y, mo, d := req.Day.Date()
	emit := func(m int) error {
		ts, err := types.TimeStringFromMinutes(m)
		if err != nil {
			return err
		}
		candidate := Candidate{
			OwnerID:         req.OwnerID,
			Start:           time.Date(y, mo, d, m/60, m%60, 0, 0, req.Day.Location()),
			DurationMinutes: req.DurationMinutes,
			RequireFuture:   req.RequireFuture,
			Now:             req.Now,
		}
		slots = append(slots, domain.TimeSlot{
			Time:      ts,
			Available: IsAvailable(candidate, req.Hours, req.Existing),
		})
		return nil
	}

	last := -1
	cursor := open
	for cursor+req.DurationMinutes <= closing {
		if inLunch(cursor) {
			cursor = lunchEnd
			continue
		}
		if err := emit(cursor); err != nil {
			return nil, err
		}
		last = cursor
		cursor += step
	}

	flush := closing - req.DurationMinutes
	if flush > last && flush >= open && !inLunch(flush) {
		if err := emit(flush); err != nil {
			return nil, err
		}
	}

	return slots, nil
}
