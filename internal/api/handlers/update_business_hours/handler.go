package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/businesshours"
	"github.com/m04kA/SMC-SchedulingService/internal/service/businesshours/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOwnerID     = "отсутствует ID владельца"
	msgInvalidHours       = "некорректные рабочие часы"
)

type Handler struct {
	service BusinessHoursService
	logger  Logger
}

func NewHandler(service BusinessHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/business-hours
// Все поля тела опциональны, переданные заменяют текущие значения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("PUT /business-hours - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}

	var req models.UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hours, err := h.service.Update(r.Context(), ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /business-hours - Invalid business hours: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidHours+": "+err.Error())

		default:
			h.logger.Error("PUT /business-hours - Failed to update: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /business-hours - Business hours updated: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBusinessHours(hours))
}
