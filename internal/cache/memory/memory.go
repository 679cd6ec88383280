// Package memory implementa cache.Cache en memoria de proceso.
package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache es un cache en memoria con TTL por entrada.
// Suficiente para una consola de un solo nodo; para múltiples réplicas usar redis.
type Cache struct {
	c *gocache.Cache
}

// New crea un cache con el TTL por defecto dado.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *Cache) Get(key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
}

func (m *Cache) Delete(key string) {
	m.c.Delete(key)
}
