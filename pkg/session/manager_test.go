package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosovalle/shopfront-backend/pkg/kv"
)

func newManager(t *testing.T) (*Manager, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemory()
	mgr, err := NewManager(store, time.Hour)
	require.NoError(t, err)
	return mgr, store
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(nil, time.Hour); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewManager(kv.NewMemory(), 0); err == nil {
		t.Fatal("expected error for non-positive ttl")
	}
}

func TestBeginMintsLiveSession(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	id, err := mgr.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(id))

	alive, err := mgr.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, alive)
}

func TestEndRevokesSession(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	id, err := mgr.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, mgr.End(ctx, id))

	alive, err := mgr.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestTouchRevivesMarker(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	id := uuid.NewString()
	alive, err := mgr.Exists(ctx, id)
	require.NoError(t, err)
	require.False(t, alive)

	require.NoError(t, mgr.Touch(ctx, id))
	alive, err = mgr.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, alive)
}

func TestBlankSessionIDs(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	assert.ErrorIs(t, mgr.Touch(ctx, "  "), ErrUnknownSession)
	assert.ErrorIs(t, mgr.End(ctx, ""), ErrUnknownSession)

	alive, err := mgr.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, alive)
}
