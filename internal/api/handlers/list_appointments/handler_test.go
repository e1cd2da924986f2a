package list_appointments

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
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	filter appointments.ListFilter
	list   []*domain.Appointment
	err    error
}

func (f *fakeService) ListForOwner(_ context.Context, filter appointments.ListFilter) ([]*domain.Appointment, error) {
	f.filter = filter
	return f.list, f.err
}

func serve(t *testing.T, svc *fakeService, loc *time.Location, query string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, loc, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments"+query, nil)
	req.Header.Set(middleware.OwnerIDHeader, "7")
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_FilterParsing(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	svc := &fakeService{list: []*domain.Appointment{
		{ID: 1, OwnerID: 7, DurationMinutes: 60, Status: domain.StatusScheduled},
		{ID: 2, OwnerID: 7, DurationMinutes: 30, Status: domain.StatusScheduled},
	}}

	rec := serve(t, svc, loc, "?from=2026-03-09&to=2026-03-15&status=scheduled&q=Anna")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.filter.OwnerID)
	require.NotNil(t, svc.filter.From)
	require.NotNil(t, svc.filter.To)
	assert.True(t, svc.filter.From.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, loc)))
	// to включительно: граница сдвигается на начало следующего дня
	assert.True(t, svc.filter.To.Equal(time.Date(2026, 3, 16, 0, 0, 0, 0, loc)))
	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, domain.StatusScheduled, *svc.filter.Status)
	assert.Equal(t, "Anna", svc.filter.Search)

	var resp models.AppointmentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Appointments, 2)
}

func TestHandle_EmptyList(t *testing.T) {
	rec := serve(t, &fakeService{}, time.UTC, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"appointments":[],"total":0}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
	}{
		{name: "bad from", query: "?from=09.03.2026", wantStatus: http.StatusBadRequest},
		{name: "bad status", query: "?status=archived", wantStatus: http.StatusBadRequest},
		{name: "range too long", query: "?from=2026-01-01&to=2026-12-31",
			svcErr: fmt.Errorf("%w: range", appointments.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", query: "", svcErr: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeService{err: tt.svcErr}, time.UTC, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
