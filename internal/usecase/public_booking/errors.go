package public_booking

import "errors"

var (
	// ErrLinkNotFound возвращается, когда ссылка не найдена
	ErrLinkNotFound = errors.New("booking link not found")

	// ErrLinkInactive возвращается, когда ссылка выключена владельцем
	ErrLinkInactive = errors.New("booking link is inactive")

	// ErrServiceNotEligible возвращается, когда услуга не входит в ссылку
	ErrServiceNotEligible = errors.New("service is not available via this link")

	// ErrLeadTimeExceeded возвращается, когда дата вне окна записи ссылки
	ErrLeadTimeExceeded = errors.New("date is outside of the booking window")

	// ErrInvalidInput возвращается при некорректных данных формы
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase: internal error")
)
