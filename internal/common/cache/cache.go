// Package cache holds the last successful provider result per request key.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "krishi-assistant/internal/common/errors"
)

const DefaultPrefix = "agri:cache:"

// Entry is one cached provider result.
type Entry struct {
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Store is a time-bounded cache. Get returns (nil, nil) on a miss or an
// expired entry. Writes to the same key are last-writer-wins.
type Store interface {
	Get(ctx context.Context, provider, key string) (*Entry, error)
	Set(ctx context.Context, provider, key string, entry *Entry, ttl time.Duration) error
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(provider, key string) string {
	return s.prefix + provider + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, provider, key string) (*Entry, error) {
	val, err := s.client.Get(ctx, s.key(provider, key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewCacheUnavailableError(err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		// A corrupt entry is a miss; the next live fetch overwrites it.
		return nil, nil
	}
	return &e, nil
}

func (s *RedisStore) Set(ctx context.Context, provider, key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	if err := s.client.Set(ctx, s.key(provider, key), data, ttl).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded map for single-process deployments and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

// WithClock replaces the expiry clock.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(ctx context.Context, provider, key string) (*Entry, error) {
	k := provider + ":" + key

	s.mu.RLock()
	item, ok := s.items[k]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.items[k]; ok && cur.expiresAt.Equal(item.expiresAt) {
			delete(s.items, k)
		}
		s.mu.Unlock()
		return nil, nil
	}

	e := item.entry
	return &e, nil
}

func (s *MemoryStore) Set(ctx context.Context, provider, key string, entry *Entry, ttl time.Duration) error {
	item := memoryItem{entry: *entry}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.items[provider+":"+key] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
