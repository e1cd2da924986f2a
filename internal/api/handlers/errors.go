package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgConflict         = "выбранное время пересекается с другой записью"
	msgDayOff           = "выбранный день выходной"
	msgLunchBreak       = "выбранное время попадает на обеденный перерыв"
	msgOutOfHours       = "выбранное время вне рабочих часов"
	msgPastTime         = "нельзя записаться на прошедшее время"
	msgInvalidDuration  = "некорректная длительность услуги"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgNotFound         = "запись не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgClientNotFound   = "клиент не найден"
	msgInvalidStatus    = "некорректный статус записи"
	msgOwnerBusy        = "календарь занят, повторите попытку"
	msgInvalidInputData = "некорректные данные запроса"
)

// MapBookingError переводит ошибки журнала записей и проверки доступности в HTTP статус
// ok=false для неизвестных ошибок (их надо логировать и отвечать 500)
func MapBookingError(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, availability.ErrConflict):
		return http.StatusConflict, msgConflict, true
	case errors.Is(err, availability.ErrDayOff):
		return http.StatusUnprocessableEntity, msgDayOff, true
	case errors.Is(err, availability.ErrLunchBreak):
		return http.StatusUnprocessableEntity, msgLunchBreak, true
	case errors.Is(err, availability.ErrOutOfHours):
		return http.StatusUnprocessableEntity, msgOutOfHours, true
	case errors.Is(err, availability.ErrPastTime):
		return http.StatusUnprocessableEntity, msgPastTime, true
	case errors.Is(err, availability.ErrInvalidDuration):
		return http.StatusUnprocessableEntity, msgInvalidDuration, true
	case errors.Is(err, types.ErrInvalidTimeFormat):
		return http.StatusBadRequest, msgInvalidTime, true
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		return http.StatusNotFound, msgNotFound, true
	case errors.Is(err, appointments.ErrServiceNotFound):
		return http.StatusNotFound, msgServiceNotFound, true
	case errors.Is(err, appointments.ErrClientNotFound):
		return http.StatusNotFound, msgClientNotFound, true
	case errors.Is(err, appointments.ErrInvalidStatus):
		return http.StatusBadRequest, msgInvalidStatus, true
	case errors.Is(err, appointments.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInputData + ": " + err.Error(), true
	case errors.Is(err, appointments.ErrOwnerBusy):
		return http.StatusServiceUnavailable, msgOwnerBusy, true
	default:
		return 0, "", false
	}
}
