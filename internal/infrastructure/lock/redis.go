package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/pkg/config"
	"github.com/jhoicas/fims/pkg/logger"
)

const (
	keyPrefix   = "fims:lock:"
	retryPeriod = 25 * time.Millisecond
)

// Redis bloqueo por clave compartido entre instancias del API (redislock).
type Redis struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
	log    *logger.Logger
}

// Connect abre el cliente de Redis y verifica la conexión con PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// NewRedis crea el locker. ttl vence la clave si el proceso muere con ella tomada;
// wait limita la espera por una clave ocupada.
func NewRedis(rdb redislock.RedisClient, ttl, wait time.Duration, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: redislock.New(rdb), ttl: ttl, wait: wait, log: log}
}

// Lock reintenta hasta obtener la clave o agotar wait (domain.ErrLockTimeout).
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	obtainCtx := ctx
	if r.wait > 0 {
		var cancel context.CancelFunc
		obtainCtx, cancel = context.WithTimeout(ctx, r.wait)
		defer cancel()
	}
	lock, err := r.client.Obtain(obtainCtx, keyPrefix+key, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryPeriod),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el bloqueo")
		}
	}, nil
}
