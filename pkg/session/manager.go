package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcosovalle/shopfront-backend/pkg/kv"
)

// ErrUnknownSession is returned when an ID has no live marker in the store.
var ErrUnknownSession = errors.New("unknown session")

// Manager mints and tracks anonymous storefront sessions. A session is a
// uuid plus a marker key in the kv store; the marker's TTL bounds how long the
// session's collections survive without activity.
type Manager struct {
	store kv.Store
	ttl   time.Duration
}

func NewManager(store kv.Store, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Begin mints a new session ID and persists its marker.
func (m *Manager) Begin(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := m.store.SetWithTTL(ctx, kv.SessionKey(id, ""), markerValue(), m.ttl); err != nil {
		return "", fmt.Errorf("persist session marker: %w", err)
	}
	return id, nil
}

// Touch refreshes the marker TTL for a live session, reviving the marker when
// it expired but the client still presents the ID. Collections keyed under the
// session stay readable either way.
func (m *Manager) Touch(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrUnknownSession
	}
	return m.store.SetWithTTL(ctx, kv.SessionKey(id, ""), markerValue(), m.ttl)
}

// Exists reports whether the session marker is still live.
func (m *Manager) Exists(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	if _, err := m.store.Get(ctx, kv.SessionKey(id, "")); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// End drops the session marker. Collection keys are left to their own TTLs.
func (m *Manager) End(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrUnknownSession
	}
	return m.store.Del(ctx, kv.SessionKey(id, ""))
}

func markerValue() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
