package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// LunchBreak обеденный перерыв в запросах и ответах
type LunchBreak struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateBusinessHoursRequest запрос на изменение рабочих часов
// Все поля опциональны - обновляются только переданные значения
type UpdateBusinessHoursRequest struct {
	StartTime        *string     `json:"startTime,omitempty"`
	EndTime          *string     `json:"endTime,omitempty"`
	DaysOff          *[]int      `json:"daysOff,omitempty"`
	LunchBreak       *LunchBreak `json:"lunchBreak,omitempty"`
	RemoveLunchBreak bool        `json:"removeLunchBreak,omitempty"`
}

// Apply переносит изменения в копию текущих настроек
// Время нормализуется к "HH:MM" ("09:00:00" -> "09:00")
func (r *UpdateBusinessHoursRequest) Apply(current *domain.BusinessHours) (*domain.BusinessHours, error) {
	next := *current
	next.DaysOff = append([]int(nil), current.DaysOff...)

	var err error
	if r.StartTime != nil {
		if next.StartTime, err = normalize("startTime", *r.StartTime); err != nil {
			return nil, err
		}
	}
	if r.EndTime != nil {
		if next.EndTime, err = normalize("endTime", *r.EndTime); err != nil {
			return nil, err
		}
	}
	if r.DaysOff != nil {
		next.DaysOff = append([]int{}, (*r.DaysOff)...)
	}
	if r.LunchBreak != nil {
		lunch := &domain.LunchBreak{}
		if lunch.Start, err = normalize("lunchBreak.start", r.LunchBreak.Start); err != nil {
			return nil, err
		}
		if lunch.End, err = normalize("lunchBreak.end", r.LunchBreak.End); err != nil {
			return nil, err
		}
		next.LunchBreak = lunch
	}
	if r.RemoveLunchBreak {
		next.LunchBreak = nil
	}
	return &next, nil
}

func normalize(field, raw string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

// Response модели

// BusinessHoursResponse ответ с рабочими часами владельца
type BusinessHoursResponse struct {
	OwnerID    int64       `json:"ownerId"`
	StartTime  string      `json:"startTime"`
	EndTime    string      `json:"endTime"`
	DaysOff    []int       `json:"daysOff"`
	LunchBreak *LunchBreak `json:"lunchBreak,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// FromDomainBusinessHours конвертирует domain.BusinessHours в BusinessHoursResponse
func FromDomainBusinessHours(h *domain.BusinessHours) *BusinessHoursResponse {
	if h == nil {
		return nil
	}

	resp := &BusinessHoursResponse{
		OwnerID:   h.OwnerID,
		StartTime: string(h.StartTime),
		EndTime:   string(h.EndTime),
		DaysOff:   append([]int{}, h.DaysOff...),
		UpdatedAt: h.UpdatedAt,
	}
	if h.LunchBreak != nil {
		resp.LunchBreak = &LunchBreak{Start: string(h.LunchBreak.Start), End: string(h.LunchBreak.End)}
	}
	return resp
}
