package public_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateForm валидирует форму записи
func validateForm(form *BookingForm) error {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if len(strings.TrimPrefix(domain.NormalizePhone(form.Phone), "+")) < 5 {
		return fmt.Errorf("%w: phone is invalid", ErrInvalidInput)
	}

	if form.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if form.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := form.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if form.Notes != nil && utf8.RuneCountInString(*form.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
