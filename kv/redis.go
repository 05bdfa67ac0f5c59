package kv

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis adapts a go-redis client to the Store port.
type Redis struct {
	conn *redis.Client
}

func NewRedis(conn *redis.Client) *Redis {
	return &Redis{conn: conn}
}

// DialRedis connects using REDIS_ADDR, defaulting to localhost:6379.
func DialRedis() *Redis {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
}

// Conn exposes the underlying client for pub/sub use.
func (r *Redis) Conn() *redis.Client {
	return r.conn
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.conn.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.conn.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.conn.Del(ctx, key).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.conn.FlushDB(ctx).Err()
}
