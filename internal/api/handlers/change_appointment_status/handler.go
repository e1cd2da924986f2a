package change_appointment_status

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingOwnerID       = "отсутствует ID владельца"
	msgInvalidStatus        = "некорректный статус записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
// Предупреждения (например, не найден парный доход) не мешают смене статуса и возвращаются в ответе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	change, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid status %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), ownerID, appointmentID, change)
	if err != nil {
		if status, msg, known := handlers.MapBookingError(err); known {
			h.logger.Warn("PATCH /appointments/{id}/status - Status change rejected: appointment_id=%d, to=%s, error=%v",
				appointmentID, change.Status, err)
			handlers.RespondError(w, status, msg)
			return
		}
		h.logger.Error("PATCH /appointments/{id}/status - Failed to change status: appointment_id=%d, error=%v",
			appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	if len(result.Warnings) > 0 {
		h.logger.Warn("PATCH /appointments/{id}/status - Status changed with warnings: appointment_id=%d, warnings=%v",
			appointmentID, result.Warnings)
	} else {
		h.logger.Info("PATCH /appointments/{id}/status - Status changed: appointment_id=%d, to=%s, changed=%t",
			appointmentID, change.Status, result.Changed)
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromStatusChange(result.Appointment, result.Changed, result.Warnings))
}
