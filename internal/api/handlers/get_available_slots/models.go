package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse слот в HTTP ответе
type SlotResponse struct {
	Time      string `json:"time"` // "10:30"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceID       int64          `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	Step            int            `json:"step"`
	Slots           []SlotResponse `json:"slots"`
	AvailableCount  int            `json:"availableCount"`
}

// ParseDate разбирает YYYY-MM-DD в полночь указанной локации
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, raw, loc)
}

// ToUseCaseRequest собирает запрос к use case из query параметров
func ToUseCaseRequest(ownerID, serviceID int64, dateStr, stepStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return nil, err
	}

	step := 0
	if stepStr != "" {
		step, err = strconv.Atoi(stepStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		OwnerID:   ownerID,
		ServiceID: serviceID,
		Date:      date,
		Step:      step,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Step:            resp.Step,
		Slots:           slots,
		AvailableCount:  resp.AvailableCount,
	}
}
