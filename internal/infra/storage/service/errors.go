package service

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у владельца
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("service.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("service.repository: failed to scan row")

	// ErrInvalidDuration возвращается, когда длительность услуги в каталоге не разбирается
	ErrInvalidDuration = errors.New("service.repository: invalid service duration")
)
