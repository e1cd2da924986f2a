package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена у владельца
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrLockOwner возвращается, когда не удалось взять advisory lock владельца
	ErrLockOwner = errors.New("appointment.repository: failed to lock owner")
)
