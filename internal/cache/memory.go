package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore кеш в памяти процесса, когда redis не настроен.
// Значения хранятся в json, как и в redis, чтобы кеш не отдавал общие указатели.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ app.MemoCacheFactory = &MemoryStore{}

func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Namespace(name string) app.MemoCache {
	return &memoryCache{store: s, prefix: name + ":"}
}

type memoryCache struct {
	store  *MemoryStore
	prefix string
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.store.mu.Lock()
	entry, ok := c.store.entries[c.prefix+key]
	if ok && !entry.expires.IsZero() && c.store.now().After(entry.expires) {
		delete(c.store.entries, c.prefix+key)
		ok = false
	}
	c.store.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(entry.data, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expires = c.store.now().Add(ttl)
	}

	c.store.mu.Lock()
	c.store.entries[c.prefix+key] = entry
	c.store.mu.Unlock()
	return nil
}

func (c *memoryCache) Reset(_ context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for key := range c.store.entries {
		if strings.HasPrefix(key, c.prefix) {
			delete(c.store.entries, key)
		}
	}
	return nil
}
