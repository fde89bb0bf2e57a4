// Package querycache keeps the last result of each remote query, keyed by
// the procedure name and its canonical parameters, so that a mutation can
// invalidate every query of an operation and the view can re-fetch.
package querycache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const DefaultTTL = 5 * time.Minute

const keySep = "|"

// Key identifies one parameterised query.
type Key struct {
	Operation string
	Params    string
}

// NewKey canonicalises params with encoding/json. Params that cannot be
// encoded fall back to their %v form.
func NewKey(operation string, params any) Key {
	if params == nil {
		return Key{Operation: operation}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Key{Operation: operation, Params: fmt.Sprintf("%v", params)}
	}
	return Key{Operation: operation, Params: string(raw)}
}

func (k Key) String() string {
	return k.Operation + keySep + k.Params
}

// Cache is safe for concurrent use.
type Cache[T any] struct {
	store *gocache.Cache
}

// New returns a cache whose entries expire after ttl. A non-positive ttl
// keeps entries until they are invalidated.
func New[T any](ttl time.Duration) *Cache[T] {
	expiration := ttl
	cleanup := ttl * 2
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &Cache[T]{store: gocache.New(expiration, cleanup)}
}

func (c *Cache[T]) Get(key Key) (T, bool) {
	var zero T
	raw, ok := c.store.Get(key.String())
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *Cache[T]) Set(key Key, value T) {
	c.store.Set(key.String(), value, gocache.DefaultExpiration)
}

func (c *Cache[T]) Invalidate(key Key) {
	c.store.Delete(key.String())
}

// InvalidateOperation drops every cached query of operation and reports how
// many entries were removed.
func (c *Cache[T]) InvalidateOperation(operation string) int {
	prefix := operation + keySep
	removed := 0
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
			removed++
		}
	}
	return removed
}

func (c *Cache[T]) Len() int {
	return c.store.ItemCount()
}
