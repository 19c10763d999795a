// Package cache provides a small JSON cache over Redis with versioned namespaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrMiss is returned when the requested key is not cached.
	ErrMiss = errors.New("cache: key not found")
	// ErrKeyEmpty is returned when an empty key is provided.
	ErrKeyEmpty = errors.New("cache: key cannot be empty")
)

// Cache is the subset of caching the services depend on.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Version returns the current generation of namespace, 0 when never bumped.
	Version(ctx context.Context, namespace string) (int64, error)
	// Bump advances the generation of namespace, orphaning keys built from the old one.
	Bump(ctx context.Context, namespace string) error
}

// Config holds Redis connection configuration.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	KeyPrefix   string
}

// Redis implements Cache on a go-redis client.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to Redis and pings it.
func NewRedis(ctx context.Context, cfg Config) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, errors.New("cache: redis address is required")
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		MaxRetries:   1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "careercanvas:"
	}
	return &Redis{client: client, prefix: prefix}, nil
}

// Get decodes the JSON value at key into dest. Returns ErrMiss when absent.
func (r *Redis) Get(ctx context.Context, key string, dest any) error {
	if key == "" {
		return ErrKeyEmpty
	}
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache: get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return nil
}

// Set stores value as JSON under key.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return ErrKeyEmpty
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return r.client.Set(ctx, r.prefix+key, data, ttl).Err()
}

// Version reads the namespace generation counter.
func (r *Redis) Version(ctx context.Context, namespace string) (int64, error) {
	v, err := r.client.Get(ctx, r.versionKey(namespace)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: version %s: %w", namespace, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cache: version %s: %w", namespace, err)
	}
	return n, nil
}

// Bump increments the namespace generation counter.
func (r *Redis) Bump(ctx context.Context, namespace string) error {
	return r.client.Incr(ctx, r.versionKey(namespace)).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) versionKey(namespace string) string {
	return r.prefix + namespace + ":version"
}

var _ Cache = (*Redis)(nil)
