package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/nargizhn/primehub-backend/pkg/config"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{
		store: store,
		keyer: prefixKeyer{},
		ttl:   time.Hour,
	}, store
}

func TestGenerateStoresRefreshToken(t *testing.T) {
	manager, store := newTestManager()

	token, err := manager.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a refresh token")
	}
	if store.values["session:access:access-1"] != token {
		t.Fatalf("expected token stored under access key")
	}

	ok, err := manager.HasSession(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected session to exist")
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	manager, store := newTestManager()

	token, err := manager.Generate(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newAccessID, newToken, err := manager.Rotate(context.Background(), "access-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newAccessID == "access-1" {
		t.Fatalf("expected a fresh access id")
	}
	if newToken == token {
		t.Fatalf("expected a fresh refresh token")
	}

	if _, ok := store.values["session:access:access-1"]; ok {
		t.Fatalf("expected old session to be deleted")
	}
	ok, err := manager.HasSession(context.Background(), newAccessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected new session to exist")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	manager, _ := newTestManager()

	if _, err := manager.Generate(context.Background(), "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, _, err := manager.Rotate(context.Background(), "access-1", "forged-token")
	if err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken got %v", err)
	}
}

func TestRotateUnknownSession(t *testing.T) {
	manager, _ := newTestManager()

	_, _, err := manager.Rotate(context.Background(), "missing", "token")
	if err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken got %v", err)
	}
}

func TestRevokeRemovesSession(t *testing.T) {
	manager, _ := newTestManager()

	if _, err := manager.Generate(context.Background(), "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := manager.Revoke(context.Background(), "access-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err := manager.HasSession(context.Background(), "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected session gone after revoke")
	}
}

func TestNewManagerValidatesTTL(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{}); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
