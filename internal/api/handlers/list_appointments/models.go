package list_appointments

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ToServiceFilter формирует фильтр из query параметров
// from включительно, to - дата, по которую включительно (в часовом поясе владельца)
func ToServiceFilter(ownerID int64, fromStr, toStr, statusStr, search string, loc *time.Location) (appointments.ListFilter, error) {
	filter := appointments.ListFilter{
		OwnerID: ownerID,
		Search:  search,
	}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return filter, fmt.Errorf("from: %w", err)
		}
		filter.From = &from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return filter, fmt.Errorf("to: %w", err)
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	if statusStr != "" {
		status, err := models.ToDomainStatus(statusStr)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}
