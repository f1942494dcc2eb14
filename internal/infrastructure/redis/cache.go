package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

// Cache stores JSON-encoded values. A nil *Cache or one built from a nil client
// behaves as an always-empty cache.
type Cache struct {
	rdb    *goredis.Client
	prefix string
}

func NewCache(client *Client, prefix string) *Cache {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	return &Cache{rdb: rdb, prefix: prefix}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// Get decodes the cached value into dest and reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, domain.ErrCacheUnavailable(err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		// corrupt entry: drop it so the next read repopulates
		_ = c.rdb.Del(ctx, c.key(key)).Err()
		return false, nil
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.key(key), b, ttl).Err(); err != nil {
		return domain.ErrCacheUnavailable(err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return domain.ErrCacheUnavailable(err)
	}
	return nil
}

// Entry is a cached key as seen by operator tooling. Key has the prefix removed.
type Entry struct {
	Key string
	TTL time.Duration
	Raw string
}

const scanCount = 200

// Scan walks every key matching prefix+pattern and calls fn for each.
func (c *Cache) Scan(ctx context.Context, pattern string, fn func(Entry) error) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.key(pattern), scanCount).Result()
		if err != nil {
			return domain.ErrCacheUnavailable(err)
		}
		for _, k := range keys {
			// keys can expire between SCAN and GET; report them empty
			val, err := c.rdb.Get(ctx, k).Result()
			if err != nil && !errors.Is(err, goredis.Nil) {
				return domain.ErrCacheUnavailable(err)
			}
			ttl, err := c.rdb.TTL(ctx, k).Result()
			if err != nil {
				return domain.ErrCacheUnavailable(err)
			}
			if err := fn(Entry{Key: strings.TrimPrefix(k, c.prefix), TTL: ttl, Raw: val}); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Purge deletes every key matching prefix+pattern and returns how many went.
func (c *Cache) Purge(ctx context.Context, pattern string) (int, error) {
	var keys []string
	err := c.Scan(ctx, pattern, func(e Entry) error {
		keys = append(keys, e.Key)
		return nil
	})
	if err != nil || len(keys) == 0 {
		return 0, err
	}
	if err := c.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}
