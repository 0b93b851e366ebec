// internal/workers/conversation/session-context/store.go
package sessioncontext

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/models"
)

// Store persists session contexts. Get returns (nil, nil) for an unknown id.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.SessionContext, error)
	Put(ctx context.Context, session *models.SessionContext) error
}

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore keys sessions under prefix and lets redis expire them after
// ttl of inactivity.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	val, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreFailedError("get", err)
	}

	var sc models.SessionContext
	if err := json.Unmarshal(val, &sc); err != nil {
		return nil, apperrors.NewSessionStoreFailedError("decode", err)
	}
	return &sc, nil
}

func (s *RedisStore) Put(ctx context.Context, session *models.SessionContext) error {
	data, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewSessionStoreFailedError("encode", err)
	}
	if err := s.client.Set(ctx, s.prefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return apperrors.NewSessionStoreFailedError("put", err)
	}
	return nil
}

// MemoryStore keeps sessions in process. Values are copied in and out so
// callers never share a context.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.SessionContext)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if sc.LastLocation != nil {
		loc := *sc.LastLocation
		sc.LastLocation = &loc
	}
	return &sc, nil
}

func (s *MemoryStore) Put(ctx context.Context, session *models.SessionContext) error {
	sc := *session
	if sc.LastLocation != nil {
		loc := *sc.LastLocation
		sc.LastLocation = &loc
	}

	s.mu.Lock()
	s.sessions[sc.SessionID] = sc
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
