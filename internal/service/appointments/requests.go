package appointments

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CreateRequest запрос на создание записи
type CreateRequest struct {
	OwnerID       int64
	ClientID      int64
	ServiceID     int64
	ScheduledTime time.Time
	Notes         *string
	Source        domain.AppointmentSource
	BookingLinkID *int64
	RequireFuture bool      // публичная запись разрешает только будущее время
	Now           time.Time // нулевое значение = текущее время
}

// Patch частичное изменение записи, nil-поля не меняются
type Patch struct {
	ClientID              *int64
	ServiceID             *int64
	ScheduledTime         *time.Time
	DurationOverride      *int
	ClearDurationOverride bool
	FinalPrice            *float64
	Discount              *float64
	Notes                 *string
}

// changesTiming возвращает true, если патч может сдвинуть интервал записи
func (p Patch) changesTiming() bool {
	return p.ServiceID != nil || p.ScheduledTime != nil || p.DurationOverride != nil || p.ClearDurationOverride
}

// changesIncome возвращает true, если патч меняет сумму дохода
func (p Patch) changesIncome() bool {
	return p.FinalPrice != nil || p.Discount != nil
}

// StatusChange запрос на смену статуса
// FinalPrice, Discount, DurationOverride применяются вместе со сменой (например, при завершении)
type StatusChange struct {
	Status           domain.AppointmentStatus
	FinalPrice       *float64
	Discount         *float64
	DurationOverride *int
}

// StatusChangeResult результат смены статуса
type StatusChangeResult struct {
	Appointment *domain.Appointment
	Changed     bool    // false для повторной установки того же статуса
	Warnings    []error // восстановимые проблемы (ErrOrphanedFinancialRecord)
}

// ListFilter фильтр списка записей
type ListFilter struct {
	OwnerID int64
	From    *time.Time
	To      *time.Time
	Status  *domain.AppointmentStatus
	Search  string
}

func validateCreate(req CreateRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.ScheduledTime.IsZero() {
		return fmt.Errorf("%w: scheduled time is required", ErrInvalidInput)
	}
	if req.Source != domain.SourceInternal && req.Source != domain.SourcePublicLink {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}
	if req.Source == domain.SourcePublicLink && req.BookingLinkID == nil {
		return fmt.Errorf("%w: booking link is required for public bookings", ErrInvalidInput)
	}
	return validateNotes(req.Notes)
}

func validatePatch(p Patch) error {
	if p.ClientID != nil && *p.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if p.ServiceID != nil && *p.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if p.ScheduledTime != nil && p.ScheduledTime.IsZero() {
		return fmt.Errorf("%w: scheduled time must not be empty", ErrInvalidInput)
	}
	if p.DurationOverride != nil && p.ClearDurationOverride {
		return fmt.Errorf("%w: durationOverride set and cleared at once", ErrInvalidInput)
	}
	if err := validateAmounts(p.FinalPrice, p.Discount, p.DurationOverride); err != nil {
		return err
	}
	return validateNotes(p.Notes)
}

func validateStatusChange(c StatusChange) error {
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	return validateAmounts(c.FinalPrice, c.Discount, c.DurationOverride)
}

func validateAmounts(price, discount *float64, override *int) error {
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: finalPrice must not be negative", ErrInvalidInput)
	}
	if discount != nil && *discount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if override != nil && (*override < domain.MinDurationMinutes || *override > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: durationOverride must be within %d..%d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}

func validateNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func validateList(f ListFilter) error {
	if f.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if f.From != nil && f.To != nil {
		if !f.From.Before(*f.To) {
			return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
		}
		if f.To.Sub(*f.From) > domain.MaxListRangeDays*24*time.Hour {
			return fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, domain.MaxListRangeDays)
		}
	}
	if f.Status != nil && !f.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *f.Status)
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Search)) > domain.MaxSearchLength {
		return fmt.Errorf("%w: search longer than %d characters", ErrInvalidInput, domain.MaxSearchLength)
	}
	return nil
}
