// limiter — троттлинг неудачных попыток входа поверх Redis.
//
// Счётчик ведётся по нормализованному email: INCR при каждой неудаче,
// EXPIRE выставляется на первом инкременте, успешный вход сбрасывает ключ.
// Хэширование пароля остаётся основным ограничителем перебора; лимитер —
// дополнительный слой и при недоступности Redis вход не блокирует
// (решение за вызывающим).
package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited — лимит неудачных попыток исчерпан.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable — Redis недоступен; вызывающий решает, fail-open или нет.
	ErrUnavailable = errors.New("limiter unavailable")
)

// LoginLimiter — минимальный контракт лимитера попыток входа.
type LoginLimiter interface {
	// Allow возвращает ErrRateLimited, если по ключу исчерпан лимит.
	Allow(ctx context.Context, key string) error
	// Fail фиксирует неудачную попытку.
	Fail(ctx context.Context, key string) error
	// Reset сбрасывает счётчик (после успешного входа).
	Reset(ctx context.Context, key string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisLimiter struct {
	rdb         *redis.Client
	prefix      string
	maxAttempts int
	cooldown    time.Duration
}

// NewRedisLimiter создаёт лимитер из URL Redis (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "acct:login:".
func NewRedisLimiter(redisURL, prefix string, maxAttempts int, cooldown time.Duration) (LoginLimiter, error) {
	if prefix == "" {
		prefix = "acct:login:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisLimiter{
		rdb:         rdb,
		prefix:      prefix,
		maxAttempts: maxAttempts,
		cooldown:    cooldown,
	}, nil
}

func (l *redisLimiter) key(k string) string { return l.prefix + k }

func (l *redisLimiter) Allow(ctx context.Context, key string) error {
	count, err := l.rdb.Get(ctx, l.key(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if count >= int64(l.maxAttempts) {
		return ErrRateLimited
	}

	return nil
}

func (l *redisLimiter) Fail(ctx context.Context, key string) error {
	count, err := l.rdb.Incr(ctx, l.key(key)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if count == 1 {
		if err := l.rdb.Expire(ctx, l.key(key), l.cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return nil
}

func (l *redisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.rdb.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

func (l *redisLimiter) Close() error { return l.rdb.Close() }
