// Package redis implementa cache.Cache sobre Redis.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache es un cache compartido entre réplicas de la consola.
type Cache struct {
	rdb    *goredis.Client
	prefix string
}

// New crea el cliente Redis. prefix namespacea las claves (ej: "cordely:").
func New(addr string, db int, prefix string) *Cache {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	return &Cache{rdb: rdb, prefix: prefix}
}

func (c *Cache) key(k string) string { return c.prefix + k }

func (c *Cache) Get(key string) ([]byte, bool) {
	b, err := c.rdb.Get(context.Background(), c.key(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	_ = c.rdb.Set(context.Background(), c.key(key), value, ttl).Err()
}

func (c *Cache) Delete(key string) {
	_ = c.rdb.Del(context.Background(), c.key(key)).Err()
}

// Close cierra la conexión.
func (c *Cache) Close() error { return c.rdb.Close() }
