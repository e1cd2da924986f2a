package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubAppointments []*domain.Appointment

func (s stubAppointments) ListOccupying(_ context.Context, _ int64, from, to time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range s {
		if a.ScheduledTime.Before(to) && a.EndTime().After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubCatalog struct{}

func (stubCatalog) GetByID(_ context.Context, ownerID, id int64) (*domain.Service, error) {
	if id != 3 {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: 3, OwnerID: ownerID, Name: "Massage", DurationMinutes: 45, Price: 50}, nil
}

type stubHours struct{}

func (stubHours) Get(_ context.Context, ownerID int64) (*domain.BusinessHours, error) {
	return &domain.BusinessHours{
		OwnerID:    ownerID,
		StartTime:  "09:00",
		EndTime:    "18:00",
		DaysOff:    []int{0},
		LunchBreak: &domain.LunchBreak{Start: "12:00", End: "13:00"},
	}, nil
}

type countingMetrics struct{ available, taken int }

func (m *countingMetrics) SlotsObserved(available, taken int) {
	m.available += available
	m.taken += taken
}

type clock time.Time

func (c clock) Now() time.Time { return time.Time(c) }

func tuesday(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestExecute_CalendarDay(t *testing.T) {
	existing := stubAppointments{
		{ID: 1, OwnerID: 1, ScheduledTime: tuesday(10, 0), DurationMinutes: 45, Status: domain.StatusScheduled},
		{ID: 2, OwnerID: 1, ScheduledTime: tuesday(14, 0), DurationMinutes: 45, Status: domain.StatusCanceled},
	}
	metrics := &countingMetrics{}
	uc := NewUseCase(existing, stubCatalog{}, stubHours{}, metrics, 30, logger.Nop()).
		WithTimeProvider(clock(tuesday(16, 0)))

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 3, Date: tuesday(0, 0)})
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, s := range resp.Slots {
		byTime[string(s.Time)] = s.Available
	}
	assert.Equal(t, 30, resp.Step)
	assert.False(t, byTime["09:30"], "09:30-10:15 overlaps 10:00")
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"], "touching the end of 10:00-10:45 is free")
	assert.False(t, byTime["11:30"], "runs into lunch")
	assert.True(t, byTime["14:00"], "canceled appointment frees the slot")
	assert.True(t, byTime["09:00"], "calendar view shows past slots as free")
	assert.True(t, byTime["17:15"])
	_, has1145 := byTime["11:45"]
	assert.False(t, has1145)
	assert.Equal(t, resp.AvailableCount, metrics.available)
	assert.Equal(t, len(resp.Slots)-resp.AvailableCount, metrics.taken)
}

func TestExecute_AppointmentFromPreviousDayBlocksMorning(t *testing.T) {
	// началась накануне в 08:00 и длится до 10:40
	overnight := &domain.Appointment{
		ID: 7, OwnerID: 1, ScheduledTime: tuesday(8, 0).AddDate(0, 0, -1), DurationMinutes: 26*60 + 40, Status: domain.StatusScheduled,
	}
	uc := NewUseCase(stubAppointments{overnight}, stubCatalog{}, stubHours{}, &countingMetrics{}, 30, logger.Nop()).
		WithTimeProvider(clock(tuesday(7, 0)))

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 3, Date: tuesday(0, 0)})
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, s := range resp.Slots {
		byTime[string(s.Time)] = s.Available
	}
	assert.False(t, byTime["09:00"])
	assert.False(t, byTime["10:00"], "10:00-10:45 overlaps the tail until 10:40")
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"])
}

func TestExecute_RequireFutureHidesPast(t *testing.T) {
	uc := NewUseCase(stubAppointments{}, stubCatalog{}, stubHours{}, &countingMetrics{}, 30, logger.Nop()).
		WithTimeProvider(clock(tuesday(16, 0)))

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 3, Date: tuesday(0, 0), RequireFuture: true})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		if s.Time < "16:00" {
			assert.False(t, s.Available, "slot %s is in the past", s.Time)
		}
	}
	assert.Positive(t, resp.AvailableCount)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(stubAppointments{}, stubCatalog{}, stubHours{}, &countingMetrics{}, 30, logger.Nop())

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"no owner", &Request{ServiceID: 3, Date: tuesday(0, 0)}, ErrInvalidInput},
		{"no date", &Request{OwnerID: 1, ServiceID: 3}, ErrInvalidInput},
		{"tiny step", &Request{OwnerID: 1, ServiceID: 3, Date: tuesday(0, 0), Step: 1}, ErrInvalidInput},
		{"unknown service", &Request{OwnerID: 1, ServiceID: 9, Date: tuesday(0, 0)}, ErrServiceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_DayOffIsEmpty(t *testing.T) {
	uc := NewUseCase(stubAppointments{}, stubCatalog{}, stubHours{}, &countingMetrics{}, 30, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 3, Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
