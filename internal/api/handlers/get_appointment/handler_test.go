package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	appt *domain.Appointment
	err  error
}

func (f *fakeService) Get(_ context.Context, ownerID, id int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.appt.OwnerID != ownerID || f.appt.ID != id {
		return nil, appointments.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{appt: &domain.Appointment{ID: 5, OwnerID: 7, DurationMinutes: 60, Status: domain.StatusScheduled}}
	h := NewHandler(svc, logger.Nop())

	tests := []struct {
		name       string
		owner      string
		id         string
		wantStatus int
	}{
		{name: "own appointment", owner: "7", id: "5", wantStatus: http.StatusOK},
		{name: "other owner", owner: "8", id: "5", wantStatus: http.StatusNotFound},
		{name: "bad id", owner: "7", id: "five", wantStatus: http.StatusBadRequest},
		{name: "no owner", owner: "", id: "5", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+tt.id, nil)
			if tt.owner != "" {
				req.Header.Set(middleware.OwnerIDHeader, tt.owner)
			}
			req = mux.SetURLVars(req, map[string]string{"appointmentId": tt.id})
			rec := httptest.NewRecorder()
			middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
