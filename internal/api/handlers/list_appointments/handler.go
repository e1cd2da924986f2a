package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

const (
	msgMissingOwnerID = "отсутствует ID владельца"
	msgInvalidParams  = "некорректные параметры запроса"
	msgInvalidStatus  = "некорректный статус записи"
)

type Handler struct {
	service AppointmentService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service AppointmentService, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: from, to (YYYY-MM-DD), status, q (поиск по имени/телефону клиента) - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}

	query := r.URL.Query()
	filter, err := ToServiceFilter(ownerID, query.Get("from"), query.Get("to"), query.Get("status"), query.Get("q"), h.loc)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query params: %v", err)
		if errors.Is(err, models.ErrInvalidStatus) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
		} else {
			handlers.RespondBadRequest(w, msgInvalidParams)
		}
		return
	}

	list, err := h.service.ListForOwner(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput), errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /appointments - Invalid filter: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams+": "+err.Error())

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments listed: owner_id=%d, count=%d", ownerID, len(list))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointments(list))
}
