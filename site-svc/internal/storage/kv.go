package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"flavor-heaven/site-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

// RedisKV keeps session slots in Redis; every write refreshes the TTL.
type RedisKV struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisKV(client *redis.Client, ttl time.Duration) *RedisKV {
	return &RedisKV{Client: client, TTL: ttl}
}

func (k *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := k.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (k *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return k.Client.Set(ctx, key, value, k.TTL).Err()
}

func (k *RedisKV) Delete(ctx context.Context, key string) error {
	return k.Client.Del(ctx, key).Err()
}

type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (k *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	val, ok := k.data[key]
	if !ok {
		return nil, service.ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (k *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = append([]byte(nil), value...)
	return nil
}

func (k *MemoryKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

var (
	_ service.KV = (*RedisKV)(nil)
	_ service.KV = (*MemoryKV)(nil)
)
