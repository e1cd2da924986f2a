package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	scheduled, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Appointment{
		ID:              99,
		OwnerID:         req.OwnerID,
		ClientID:        3,
		ServiceID:       req.ServiceID,
		ScheduledTime:   scheduled,
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		FinalPrice:      100,
		Source:          domain.SourceInternal,
		ClientName:      req.ClientName,
	}, nil
}

func serve(t *testing.T, uc CreateAppointmentUseCase, loc *time.Location, owner, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, loc, logger.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if owner != "" {
		req.Header.Set(middleware.OwnerIDHeader, owner)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

const validBody = `{"clientName":"Anna","clientPhone":"+7 900 123-45-67","serviceId":10,"date":"2026-03-10","startTime":"10:00"}`

func TestHandle_Created(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	uc := &fakeUseCase{}

	rec := serve(t, uc, loc, "7", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.OwnerID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.Equal(t, loc, uc.got.Date.Location())

	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(99), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.True(t, resp.EndTime.Equal(resp.ScheduledTime.Add(time.Hour)))
	// 10:00 MSK = 07:00 UTC
	assert.Equal(t, 7, resp.ScheduledTime.UTC().Hour())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		owner      string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "no owner", owner: "", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "bad json", owner: "7", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad date", owner: "7", body: `{"serviceId":10,"date":"10.03.2026","startTime":"10:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", owner: "7", body: `{"serviceId":10,"date":"2026-03-10","startTime":"25:00"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", owner: "7", body: validBody, ucErr: fmt.Errorf("%w: phone", createAppointment.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "client not found", owner: "7", body: validBody, ucErr: createAppointment.ErrClientNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict", owner: "7", body: validBody, ucErr: availability.ErrConflict, wantStatus: http.StatusConflict},
		{name: "lunch break", owner: "7", body: validBody, ucErr: availability.ErrLunchBreak, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", owner: "7", body: validBody, ucErr: createAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.ucErr}, time.UTC, tt.owner, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
