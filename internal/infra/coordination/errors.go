package coordination

import "errors"

var (
	// ErrLockTimeout блокировку владельца не удалось получить до истечения контекста
	ErrLockTimeout = errors.New("coordination: owner lock wait timeout")

	// ErrRedisUnavailable ошибка обращения к Redis
	ErrRedisUnavailable = errors.New("coordination: redis unavailable")
)
