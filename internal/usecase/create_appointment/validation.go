package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.ClientID != nil {
		if *req.ClientID <= 0 {
			return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
		}
		return nil
	}

	return validateClient(req.ClientName, req.ClientPhone)
}

// validateClient проверяет данные нового клиента
func validateClient(name, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if len(strings.TrimPrefix(domain.NormalizePhone(phone), "+")) < 5 {
		return fmt.Errorf("%w: client phone is invalid", ErrInvalidInput)
	}

	return nil
}
