package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisSlot guarda o catálogo em uma chave string do Redis
type RedisSlot struct {
	rdb *redis.Client
	key string
}

func NewRedisSlot(rdb *redis.Client, key string) *RedisSlot {
	return &RedisSlot{rdb: rdb, key: key}
}

func (r *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "store: erro ao ler redis")
	}
	return data, nil
}

func (r *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return errors.Wrap(err, "store: erro ao gravar redis")
	}
	return nil
}

func (r *RedisSlot) Close() error {
	return r.rdb.Close()
}
