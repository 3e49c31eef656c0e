// Package caching provides the process-wide key/value store shared by the
// listing read path and the rate limiter. It has no inventory knowledge.
package caching

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the cache contract. Get reports absence via the bool; a non-nil
// error from Get means the backend misbehaved and callers on the read path
// should treat the result as a miss. Set and Delete errors are surfaced to
// the caller: a failed write must not be assumed cached.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, prefix string) error
	Flush(ctx context.Context) error
}

// Config carries the explicit client configuration set once at startup.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	ReadTimeout time.Duration
	MaxRetries  int
	PoolSize    int
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore builds the singleton cache client. Connectivity problems at
// startup are logged, not fatal: the read path must not depend on cache health.
func NewRedisStore(cfg Config) Store {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
		MaxRetries:  cfg.MaxRetries,
		PoolSize:    cfg.PoolSize,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: redis ping failed on initialization: %v (address: %s)", err, cfg.Addr)
	}

	return &redisStore{client: client}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// DeletePattern removes every key starting with prefix. SCAN keeps the
// server responsive on large keyspaces where KEYS would block.
func (r *redisStore) DeletePattern(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisStore) Flush(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

// GetJSON reads key and unmarshals it into dst. Absence and backend errors
// both report found=false; the error is returned so callers can log it.
func GetJSON(ctx context.Context, s Store, key string, dst interface{}) (bool, error) {
	data, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals value and stores it under key with the given TTL.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data, ttl)
}
