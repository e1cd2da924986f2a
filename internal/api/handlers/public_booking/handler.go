package public_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	slotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgLinkNotFound       = "ссылка для записи не найдена"
	msgServiceNotEligible = "услуга недоступна для записи по этой ссылке"
	msgLeadTimeExceeded   = "дата вне доступного окна записи"
	msgInvalidForm        = "некорректные данные формы"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
)

// Handler публичные эндпоинты записи по ссылке (без X-Owner-ID, владелец берется из ссылки)
type Handler struct {
	useCase PublicBookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase PublicBookingUseCase, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// HandleInfo GET /api/v1/public/links/{slug}
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	info, err := h.useCase.GetBookingInfo(r.Context(), slug)
	if err != nil {
		h.respondError(w, "GET /public/links/{slug}", slug, err)
		return
	}

	h.logger.Info("GET /public/links/{slug} - Booking page served: slug=%s, services=%d", slug, len(info.Services))
	handlers.RespondJSON(w, http.StatusOK, FromBookingInfo(info))
}

// HandleSlots GET /api/v1/public/links/{slug}/slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /public/links/{slug}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := slotsHandler.ParseDate(query.Get("date"), h.loc)
	if err != nil {
		h.logger.Warn("GET /public/links/{slug}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.GetSlots(r.Context(), slug, serviceID, date)
	if err != nil {
		h.respondError(w, "GET /public/links/{slug}/slots", slug, err)
		return
	}

	h.logger.Info("GET /public/links/{slug}/slots - Slots computed: slug=%s, service_id=%d, available=%d",
		slug, serviceID, resp.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, slotsHandler.FromUseCaseResponse(resp))
}

// HandleSubmit POST /api/v1/public/links/{slug}/bookings
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/links/{slug}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	form, err := req.ToForm(h.loc)
	if err != nil {
		h.logger.Warn("POST /public/links/{slug}/bookings - Failed to parse form: %v", err)
		if errors.Is(err, errInvalidDate) {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	appt, err := h.useCase.Submit(r.Context(), slug, form)
	if err != nil {
		h.respondError(w, "POST /public/links/{slug}/bookings", slug, err)
		return
	}

	h.logger.Info("POST /public/links/{slug}/bookings - Appointment booked: slug=%s, appointment_id=%d", slug, appt.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromAppointment(appt))
}

// respondError общий маппинг ошибок публичной записи
// Выключенная ссылка отвечает так же, как несуществующая
func (h *Handler) respondError(w http.ResponseWriter, route, slug string, err error) {
	switch {
	case errors.Is(err, publicBooking.ErrLinkNotFound), errors.Is(err, publicBooking.ErrLinkInactive):
		h.logger.Warn("%s - Link not available: slug=%s, error=%v", route, slug, err)
		handlers.RespondNotFound(w, msgLinkNotFound)

	case errors.Is(err, publicBooking.ErrServiceNotEligible):
		h.logger.Warn("%s - Service not eligible: slug=%s", route, slug)
		handlers.RespondBadRequest(w, msgServiceNotEligible)

	case errors.Is(err, publicBooking.ErrLeadTimeExceeded):
		h.logger.Warn("%s - Outside booking window: slug=%s", route, slug)
		handlers.RespondBadRequest(w, msgLeadTimeExceeded)

	case errors.Is(err, publicBooking.ErrInvalidInput):
		h.logger.Warn("%s - Invalid form: slug=%s, error=%v", route, slug, err)
		handlers.RespondBadRequest(w, msgInvalidForm+": "+err.Error())

	default:
		if status, msg, known := handlers.MapBookingError(err); known {
			h.logger.Warn("%s - Booking rejected: slug=%s, error=%v", route, slug, err)
			handlers.RespondError(w, status, msg)
			return
		}
		h.logger.Error("%s - Failed: slug=%s, error=%v", route, slug, err)
		handlers.RespondInternalError(w)
	}
}
