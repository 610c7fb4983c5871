package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/marcosovalle/shopfront-backend/pkg/kv"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
	"github.com/marcosovalle/shopfront-backend/pkg/metrics"
)

// UnsubscribeFunc detaches a previously registered observer.
type UnsubscribeFunc func()

// Store persists named line-item collections per session and notifies
// observers after successful writes. Reads never propagate storage failures:
// a missing key, an unreachable store, or a malformed payload all read as an
// empty collection. Writes are full read-modify-write at key granularity;
// concurrent writers to the same session race and the last write wins.
type Store struct {
	kv      kv.Store
	logg    *logger.Logger
	metrics *metrics.CollectionMetrics

	mu        sync.Mutex
	subs      map[string]map[int]func(collection string)
	nextSubID int
}

func NewStore(store kv.Store, logg *logger.Logger, m *metrics.CollectionMetrics) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	return &Store{
		kv:      store,
		logg:    logg,
		metrics: m,
		subs:    map[string]map[int]func(string){},
	}, nil
}

// Items reads the persisted collection. Absent, unreachable, or corrupt
// storage degrades to an empty slice; corruption is logged, never surfaced.
func (s *Store) Items(ctx context.Context, sessionID, name string) []LineItem {
	s.metrics.IncOp(name, "read")

	raw, err := s.kv.Get(ctx, kv.SessionKey(sessionID, name))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.warn(ctx, name, "collection read failed", err)
		}
		return []LineItem{}
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.warn(ctx, name, "collection payload malformed, treating as empty", err)
		return []LineItem{}
	}
	if items == nil {
		items = []LineItem{}
	}
	return items
}

// SetItems persists the full collection, replacing whatever was stored.
func (s *Store) SetItems(ctx context.Context, sessionID, name string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		s.metrics.IncDropped(name)
		return fmt.Errorf("encode %s collection: %w", name, err)
	}
	if err := s.kv.Set(ctx, kv.SessionKey(sessionID, name), string(payload)); err != nil {
		s.metrics.IncDropped(name)
		s.warn(ctx, name, "collection write dropped", err)
		return fmt.Errorf("persist %s collection: %w", name, err)
	}
	return nil
}

// Clear empties the collection and persists the empty state.
func (s *Store) Clear(ctx context.Context, sessionID, name string) error {
	s.metrics.IncOp(name, "clear")
	if err := s.SetItems(ctx, sessionID, name, nil); err != nil {
		return err
	}
	s.notify(name)
	return nil
}

// Subscribe registers an observer for the named collection. The callback runs
// synchronously after each successful write to that collection; observers must
// re-query rather than expect a diff. The returned func detaches the observer
// and is safe to call more than once.
func (s *Store) Subscribe(name string, fn func(collection string)) UnsubscribeFunc {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	if s.subs[name] == nil {
		s.subs[name] = map[int]func(string){}
	}
	s.subs[name][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[name], id)
	}
}

func (s *Store) notify(name string) {
	s.mu.Lock()
	callbacks := make([]func(string), 0, len(s.subs[name]))
	for _, fn := range s.subs[name] {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(name)
	}
}

func (s *Store) warn(ctx context.Context, name, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithCollection(ctx, name)
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, msg)
}
