package coordination

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter ограничитель частоты запросов с фиксированным окном на Redis
// Используется для публичных маршрутов записи по ссылке
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRateLimiter создает ограничитель: не больше limit запросов на ключ за window
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: "scheduling:rl"}
}

// Allow засчитывает запрос и сообщает, укладывается ли он в лимит
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{rl.prefix + ":" + key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("%w: rate limit: %v", ErrRedisUnavailable, err)
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, fmt.Errorf("%w: rate limit result %q", ErrRedisUnavailable, v)
		}
	default:
		return false, fmt.Errorf("%w: unexpected rate limit result %T", ErrRedisUnavailable, res)
	}

	return count <= int64(rl.limit), nil
}
