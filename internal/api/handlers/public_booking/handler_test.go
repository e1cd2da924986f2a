package public_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	err      error
	gotDate  time.Time
	gotForm  *publicBooking.BookingForm
	services []*domain.Service
}

func (f *fakeUseCase) GetBookingInfo(_ context.Context, slug string) (*publicBooking.BookingInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &publicBooking.BookingInfo{
		Link:     &domain.BookingLink{ID: 1, OwnerID: 7, Slug: slug, Title: "Барбершоп", Active: true, DaysInAdvance: 7},
		Services: f.services,
		Hours:    domain.DefaultBusinessHours(7),
		FirstDay: today,
		LastDay:  today.AddDate(0, 0, 7),
	}, nil
}

func (f *fakeUseCase) GetSlots(_ context.Context, _ string, serviceID int64, date time.Time) (*getAvailableSlots.Response, error) {
	f.gotDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:            date,
		ServiceID:       serviceID,
		DurationMinutes: 60,
		Step:            30,
		Slots:           []domain.TimeSlot{{Time: "09:00", Available: true}},
		AvailableCount:  1,
	}, nil
}

func (f *fakeUseCase) Submit(_ context.Context, _ string, form *publicBooking.BookingForm) (*domain.Appointment, error) {
	f.gotForm = form
	if f.err != nil {
		return nil, f.err
	}
	scheduled, err := form.Time.OnDate(form.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Appointment{
		ID:              42,
		ScheduledTime:   scheduled,
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		ServiceName:     "Haircut",
	}, nil
}

func newRouter(uc PublicBookingUseCase, loc *time.Location) *mux.Router {
	h := NewHandler(uc, loc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/public/links/{slug}", h.HandleInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/public/links/{slug}/slots", h.HandleSlots).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/public/links/{slug}/bookings", h.HandleSubmit).Methods(http.MethodPost)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleInfo(t *testing.T) {
	uc := &fakeUseCase{services: []*domain.Service{{ID: 10, OwnerID: 7, Name: "Haircut", DurationMinutes: 60, Price: 100}}}

	rec := do(newRouter(uc, time.UTC), http.MethodGet, "/api/v1/public/links/barber", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BookingInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Барбершоп", resp.Title)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, "2026-03-10", resp.FirstDay)
	assert.Equal(t, "2026-03-17", resp.LastDay)
	assert.NotContains(t, rec.Body.String(), "viewCount")
}

func TestHandleSlots(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	uc := &fakeUseCase{}

	rec := do(newRouter(uc, loc), http.MethodGet, "/api/v1/public/links/barber/slots?serviceId=10&date=2026-03-11", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.gotDate.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, loc)))
	assert.Contains(t, rec.Body.String(), `"availableCount":1`)
}

func TestHandleSubmit(t *testing.T) {
	uc := &fakeUseCase{}
	body := `{"name":"Anna","phone":"+79001234567","serviceId":10,"date":"2026-03-11","time":"10:00"}`

	rec := do(newRouter(uc, time.UTC), http.MethodPost, "/api/v1/public/links/barber/bookings", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotForm)
	assert.Equal(t, "Anna", uc.gotForm.Name)
	assert.Equal(t, "10:00", uc.gotForm.Time.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.True(t, resp.EndTime.Equal(resp.ScheduledTime.Add(time.Hour)))
}

func TestErrors(t *testing.T) {
	validBody := `{"name":"Anna","phone":"+79001234567","serviceId":10,"date":"2026-03-11","time":"10:00"}`

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "unknown link", method: http.MethodGet, target: "/api/v1/public/links/nope",
			ucErr: publicBooking.ErrLinkNotFound, wantStatus: http.StatusNotFound},
		{name: "inactive link", method: http.MethodGet, target: "/api/v1/public/links/off",
			ucErr: publicBooking.ErrLinkInactive, wantStatus: http.StatusNotFound},
		{name: "slots bad service", method: http.MethodGet, target: "/api/v1/public/links/barber/slots?serviceId=x&date=2026-03-11",
			wantStatus: http.StatusBadRequest},
		{name: "slots bad date", method: http.MethodGet, target: "/api/v1/public/links/barber/slots?serviceId=10",
			wantStatus: http.StatusBadRequest},
		{name: "slots not eligible", method: http.MethodGet, target: "/api/v1/public/links/barber/slots?serviceId=99&date=2026-03-11",
			ucErr: publicBooking.ErrServiceNotEligible, wantStatus: http.StatusBadRequest},
		{name: "submit too far", method: http.MethodPost, target: "/api/v1/public/links/barber/bookings", body: validBody,
			ucErr: publicBooking.ErrLeadTimeExceeded, wantStatus: http.StatusBadRequest},
		{name: "submit past", method: http.MethodPost, target: "/api/v1/public/links/barber/bookings", body: validBody,
			ucErr: availability.ErrPastTime, wantStatus: http.StatusUnprocessableEntity},
		{name: "submit taken", method: http.MethodPost, target: "/api/v1/public/links/barber/bookings", body: validBody,
			ucErr: availability.ErrConflict, wantStatus: http.StatusConflict},
		{name: "submit bad form", method: http.MethodPost, target: "/api/v1/public/links/barber/bookings", body: validBody,
			ucErr: publicBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "submit bad time", method: http.MethodPost, target: "/api/v1/public/links/barber/bookings",
			body: `{"name":"Anna","phone":"+79001234567","serviceId":10,"date":"2026-03-11","time":"10"}`, wantStatus: http.StatusBadRequest},
		{name: "submit internal", method: http.MethodPost, target: "/api/v1/public/links/barber/bookings", body: validBody,
			ucErr: publicBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(&fakeUseCase{err: tt.ucErr}, time.UTC), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
