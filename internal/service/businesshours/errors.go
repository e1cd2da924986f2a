package businesshours

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных рабочих часах
	ErrInvalidInput = errors.New("invalid business hours")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
