package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const retryInterval = 25 * time.Millisecond

// Deletes the key only while it still holds our token, so a lock that
// expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares locks between instances through SET NX PX. Each
// acquisition stores a fresh uuid token that release must present.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLocker{client: client, ttl: ttl, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrNotAcquired, ctx.Err())
			}
			l.log.Error("lock acquire failed", zap.String("key", key), zap.Error(err))
			return nil, err
		}
		if acquired {
			l.log.Debug("lock acquired", zap.String("key", key), zap.String("token", token))
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			l.log.Warn("lock not acquired", zap.String("key", key), zap.Error(ctx.Err()))
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	// The caller's context may already be done; release must still run.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		l.log.Error("lock release failed", zap.String("key", key), zap.Error(err))
		return
	}
	if n == 0 {
		l.log.Warn("lock expired before release", zap.String("key", key))
	}
}
