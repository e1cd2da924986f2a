package coordination

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 10 * time.Second
	defaultLockRetry = 25 * time.Millisecond
	releaseTimeout   = 2 * time.Second
)

// Снимаем блокировку, только если она все еще наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// OwnerLock распределенная блокировка владельца на Redis (SET NX PX + освобождение по токену)
// Сериализует изменения записей одного владельца между экземплярами сервиса
type OwnerLock struct {
	rdb    *redis.Client
	ttl    time.Duration
	retry  time.Duration
	prefix string
	logger Logger
}

// NewOwnerLock создает блокировку; ttl должен быть больше времени одной транзакции записи
func NewOwnerLock(rdb *redis.Client, ttl time.Duration, logger Logger) *OwnerLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &OwnerLock{
		rdb:    rdb,
		ttl:    ttl,
		retry:  defaultLockRetry,
		prefix: "scheduling:owner-lock",
		logger: logger,
	}
}

// Lock ждет блокировку владельца, пока жив ctx
func (l *OwnerLock) Lock(ctx context.Context, ownerID int64) (func(), error) {
	key := fmt.Sprintf("%s:%d", l.prefix, ownerID)
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: owner=%d: %v", ErrLockTimeout, ownerID, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SetNX owner=%d: %v", ErrRedisUnavailable, ownerID, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: owner=%d: %v", ErrLockTimeout, ownerID, ctx.Err())
		case <-time.After(l.retry):
		}
	}
}

func (l *OwnerLock) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil && l.logger != nil {
		l.logger.Warn("OwnerLock: failed to release key=%s: %v", key, err)
	}
}
