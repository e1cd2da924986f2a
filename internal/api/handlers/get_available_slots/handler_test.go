package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	slots := []domain.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
		{Time: "10:00", Available: true},
	}
	return &getAvailableSlots.Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		ServiceName:     "Haircut",
		DurationMinutes: 60,
		Step:            30,
		Slots:           slots,
		AvailableCount:  domain.CountAvailable(slots),
	}, nil
}

func serve(t *testing.T, uc *fakeUseCase, loc *time.Location, query string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, loc, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots"+query, nil)
	req.Header.Set(middleware.OwnerIDHeader, "7")
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	uc := &fakeUseCase{}

	rec := serve(t, uc, loc, "?serviceId=10&date=2026-03-10&step=30")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.OwnerID)
	assert.Equal(t, 30, uc.got.Step)
	assert.False(t, uc.got.RequireFuture)
	assert.True(t, uc.got.Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, loc)))

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, 2, resp.AvailableCount)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, SlotResponse{Time: "09:30", Available: false}, resp.Slots[1])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		ucErr      error
		wantStatus int
	}{
		{name: "missing service", query: "?date=2026-03-10", wantStatus: http.StatusBadRequest},
		{name: "bad service", query: "?serviceId=x&date=2026-03-10", wantStatus: http.StatusBadRequest},
		{name: "missing date", query: "?serviceId=10", wantStatus: http.StatusBadRequest},
		{name: "bad date", query: "?serviceId=10&date=tomorrow", wantStatus: http.StatusBadRequest},
		{name: "bad step", query: "?serviceId=10&date=2026-03-10&step=abc", wantStatus: http.StatusBadRequest},
		{name: "step out of range", query: "?serviceId=10&date=2026-03-10&step=1",
			ucErr: fmt.Errorf("%w: step", getAvailableSlots.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "service not found", query: "?serviceId=10&date=2026-03-10",
			ucErr: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", query: "?serviceId=10&date=2026-03-10",
			ucErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.ucErr}, time.UTC, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
