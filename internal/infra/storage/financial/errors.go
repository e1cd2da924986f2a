package financial

import "errors"

var (
	// ErrRecordNotFound возвращается, когда финансовая запись не найдена
	ErrRecordNotFound = errors.New("financial.repository: record not found")

	// ErrRecordExists возвращается при попытке создать вторую запись для той же записи клиента
	ErrRecordExists = errors.New("financial.repository: record for appointment already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("financial.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("financial.repository: failed to execute query")
)
