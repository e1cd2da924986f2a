package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена у владельца
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у владельца
	ErrServiceNotFound = errors.New("service not found")

	// ErrClientNotFound возвращается, когда клиент не найден у владельца
	ErrClientNotFound = errors.New("client not found")

	// ErrInvalidStatus возвращается при недопустимом статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOrphanedFinancialRecord предупреждение: при выходе из completed парная финансовая запись не найдена
	// Смена статуса при этом выполняется
	ErrOrphanedFinancialRecord = errors.New("paired financial record not found")

	// ErrOwnerBusy возвращается, когда не дождались блокировки владельца
	ErrOwnerBusy = errors.New("owner calendar is busy, try again")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
