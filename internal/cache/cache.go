package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded reporting results. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Generation returns the current invalidation generation. Read it before
	// computing a value and hand it to Set.
	Generation(ctx context.Context) (int64, error)

	// Get decodes the value at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value only while gen is still current, so a result computed
	// before an Invalidate is dropped instead of outliving it.
	Set(ctx context.Context, key string, value any, gen int64, ttl time.Duration) error

	// Invalidate bumps the generation and drops every key written through
	// this cache.
	Invalidate(ctx context.Context) error
}

type ConnectionInfo struct {
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

// NewRedisConnection opens a client and pings it before returning.
func NewRedisConnection(info ConnectionInfo) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         info.Addr,
		Password:     info.Password,
		DB:           info.DB,
		MaxRetries:   info.MaxRetries,
		DialTimeout:  info.DialTimeout,
		ReadTimeout:  info.Timeout,
		WriteTimeout: info.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), info.Timeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

const (
	// indexKey names the set tracking every key this cache wrote.
	indexKey = "keys"
	// generationKey is incremented by every Invalidate.
	generationKey = "generation"
)

type RedisCache struct {
	raw    goredis.UniversalClient
	prefix string
}

func NewRedisCache(raw goredis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{raw: raw, prefix: prefix}
}

func (c *RedisCache) withPrefix(key string) string {
	return c.prefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.raw.Get(ctx, c.withPrefix(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %q: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.raw.Get(ctx, c.withPrefix(generationKey)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, gen int64, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	full := c.withPrefix(key)
	genKey := c.withPrefix(generationKey)

	// An Invalidate touching genKey between WATCH and EXEC aborts the write.
	err = c.raw.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, full, payload, ttl)
			pipe.SAdd(ctx, c.withPrefix(indexKey), full)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, goredis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	index := c.withPrefix(indexKey)
	if err := c.raw.Incr(ctx, c.withPrefix(generationKey)).Err(); err != nil {
		return err
	}

	keys, err := c.raw.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}

	return c.raw.Del(ctx, append(keys, index)...).Err()
}

func (c *RedisCache) Close() error {
	return c.raw.Close()
}

// Noop is used when redis is not configured; every lookup misses.
type Noop struct{}

func (Noop) Generation(context.Context) (int64, error) { return 0, nil }

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, any, int64, time.Duration) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
