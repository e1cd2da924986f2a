package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const testOwner int64 = 42

// 2026-03-10 вторник, 2026-03-08 воскресенье
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
}

func hoursWithLunch() *domain.BusinessHours {
	return &domain.BusinessHours{
		OwnerID:   testOwner,
		StartTime: "09:00",
		EndTime:   "18:00",
		DaysOff:   []int{0},
		LunchBreak: &domain.LunchBreak{
			Start: "12:00",
			End:   "13:00",
		},
	}
}

func appointment(id int64, start time.Time, minutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		OwnerID:         testOwner,
		ScheduledTime:   start,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestCheck_Overlap(t *testing.T) {
	hours := hoursWithLunch()

	tests := []struct {
		name     string
		existing []*domain.Appointment
		start    time.Time
		duration int
		exclude  *int64
		wantErr  error
	}{
		{
			name:     "overlapping tail is rejected",
			existing: []*domain.Appointment{appointment(1, at(10, 10, 0), 45, domain.StatusScheduled)},
			start:    at(10, 10, 30),
			duration: 30,
			wantErr:  ErrConflict,
		},
		{
			name:     "touching intervals are accepted",
			existing: []*domain.Appointment{appointment(1, at(10, 10, 0), 30, domain.StatusScheduled)},
			start:    at(10, 10, 30),
			duration: 30,
		},
		{
			name:     "candidate ending at existing start is accepted",
			existing: []*domain.Appointment{appointment(1, at(10, 11, 0), 30, domain.StatusScheduled)},
			start:    at(10, 10, 30),
			duration: 30,
		},
		{
			name:     "candidate containing existing is rejected",
			existing: []*domain.Appointment{appointment(1, at(10, 10, 15), 15, domain.StatusScheduled)},
			start:    at(10, 10, 0),
			duration: 60,
			wantErr:  ErrConflict,
		},
		{
			name:     "completed appointment still occupies",
			existing: []*domain.Appointment{appointment(1, at(10, 10, 0), 60, domain.StatusCompleted)},
			start:    at(10, 10, 30),
			duration: 30,
			wantErr:  ErrConflict,
		},
		{
			name: "canceled and no-show release the slot",
			existing: []*domain.Appointment{
				appointment(1, at(10, 10, 0), 60, domain.StatusCanceled),
				appointment(2, at(10, 10, 0), 60, domain.StatusNoShow),
			},
			start:    at(10, 10, 0),
			duration: 60,
		},
		{
			name:     "excluded id is ignored",
			existing: []*domain.Appointment{appointment(5, at(10, 10, 0), 60, domain.StatusScheduled)},
			start:    at(10, 10, 30),
			duration: 30,
			exclude:  ptr.Ptr(int64(5)),
		},
		{
			name: "other owner is ignored",
			existing: []*domain.Appointment{{
				ID: 1, OwnerID: 99, ScheduledTime: at(10, 10, 0), DurationMinutes: 60, Status: domain.StatusScheduled,
			}},
			start:    at(10, 10, 0),
			duration: 60,
		},
		{
			name: "duration override extends the existing interval",
			existing: []*domain.Appointment{{
				ID: 1, OwnerID: testOwner, ScheduledTime: at(10, 10, 0), DurationMinutes: 30,
				DurationOverride: ptr.Ptr(60), Status: domain.StatusCompleted,
			}},
			start:    at(10, 10, 30),
			duration: 30,
			wantErr:  ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(Candidate{
				OwnerID:         testOwner,
				Start:           tt.start,
				DurationMinutes: tt.duration,
				ExcludeID:       tt.exclude,
			}, hours, tt.existing)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckBusinessHours(t *testing.T) {
	hours := hoursWithLunch()

	tests := []struct {
		name     string
		weekday  time.Weekday
		start    int
		duration int
		wantErr  error
	}{
		{name: "inside morning", weekday: time.Tuesday, start: 9 * 60, duration: 60},
		{name: "ends exactly at lunch", weekday: time.Tuesday, start: 11*60 + 15, duration: 45},
		{name: "starts exactly after lunch", weekday: time.Tuesday, start: 13 * 60, duration: 30},
		{name: "ends exactly at closing", weekday: time.Tuesday, start: 17*60 + 15, duration: 45},
		{name: "day off", weekday: time.Sunday, start: 10 * 60, duration: 30, wantErr: ErrDayOff},
		{name: "before opening", weekday: time.Tuesday, start: 8*60 + 45, duration: 30, wantErr: ErrOutsideWorkingHours},
		{name: "past closing", weekday: time.Tuesday, start: 17*60 + 30, duration: 45, wantErr: ErrOutsideWorkingHours},
		{name: "tail into lunch", weekday: time.Tuesday, start: 11*60 + 30, duration: 45, wantErr: ErrLunchBreak},
		{name: "inside lunch", weekday: time.Tuesday, start: 12*60 + 15, duration: 15, wantErr: ErrLunchBreak},
		{name: "spans lunch", weekday: time.Tuesday, start: 11 * 60, duration: 180, wantErr: ErrLunchBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBusinessHours(hours, tt.weekday, tt.start, tt.duration)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrOutOfHours)
				assert.False(t, IsWithinBusinessHours(hours, tt.weekday, tt.start, tt.duration))
				return
			}
			assert.NoError(t, err)
			assert.True(t, IsWithinBusinessHours(hours, tt.weekday, tt.start, tt.duration))
		})
	}
}

func TestCheck_Future(t *testing.T) {
	hours := hoursWithLunch()
	now := at(10, 10, 0)

	err := Check(Candidate{OwnerID: testOwner, Start: at(10, 10, 0), DurationMinutes: 30, RequireFuture: true, Now: now}, hours, nil)
	assert.ErrorIs(t, err, ErrPastTime)

	err = Check(Candidate{OwnerID: testOwner, Start: at(10, 10, 1), DurationMinutes: 30, RequireFuture: true, Now: now}, hours, nil)
	assert.NoError(t, err)

	// внутренняя форма разрешает задним числом
	err = Check(Candidate{OwnerID: testOwner, Start: at(10, 9, 0), DurationMinutes: 30, Now: now}, hours, nil)
	assert.NoError(t, err)
}

func TestCheck_InvalidDuration(t *testing.T) {
	err := Check(Candidate{OwnerID: testOwner, Start: at(10, 10, 0)}, hoursWithLunch(), nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestFindConflict_ReturnsCollidingAppointment(t *testing.T) {
	existing := []*domain.Appointment{
		appointment(1, at(10, 9, 0), 30, domain.StatusScheduled),
		appointment(2, at(10, 10, 0), 45, domain.StatusScheduled),
	}

	got := FindConflict(testOwner, at(10, 10, 30), at(10, 11, 0), existing, nil)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
	assert.True(t, HasConflict(testOwner, at(10, 10, 30), at(10, 11, 0), existing, nil))
	assert.False(t, HasConflict(testOwner, at(10, 9, 30), at(10, 10, 0), existing, nil))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "conflict", Reason(ErrConflict))
	assert.Equal(t, "lunch_break", Reason(ErrLunchBreak))
	assert.Equal(t, "day_off", Reason(ErrDayOff))
	assert.Equal(t, "past_time", Reason(ErrPastTime))
	assert.Equal(t, "other", Reason(assert.AnError))
}
