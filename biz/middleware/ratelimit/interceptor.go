package ratelimit

import (
	"context"
	"time"

	db_redis "pwh_admin/be/biz/db/redis"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rate_limit:"

// fixedWindow counts hits in a fixed window. INCR and EXPIRE run atomically, and a counter that
// lost its TTL gets it back on the next hit.
//
// KEYS[1]: counter key
// ARGV[1]: window in seconds
// ARGV[2]: limit
var fixedWindow = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 or redis.call("TTL", KEYS[1]) == -1 then
    redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
    return 0
end
return 1
`)

type Interceptor struct {
	window time.Duration
	limit  int64
}

func NewInterceptor(windowSeconds int, limit int64) *Interceptor {
	return &Interceptor{
		window: time.Duration(windowSeconds) * time.Second,
		limit:  limit,
	}
}

// Allow reports whether one more hit for key fits in the current window.
func (i *Interceptor) Allow(ctx context.Context, key string) (bool, error) {
	n, err := fixedWindow.Run(ctx, db_redis.GetRedisClient(), []string{keyPrefix + key},
		int(i.window.Seconds()), i.limit).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
