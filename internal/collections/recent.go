package collections

import (
	"context"
	"fmt"
	"time"
)

// RecentlyViewed is a most-recent-first list capped at a fixed capacity.
// Recording an id already present moves it to the front.
type RecentlyViewed struct {
	store    *Store
	capacity int
	now      func() time.Time
}

func NewRecentlyViewed(store *Store, capacity int) RecentlyViewed {
	if capacity <= 0 {
		capacity = DefaultRecentlyViewedCap
	}
	return RecentlyViewed{store: store, capacity: capacity, now: time.Now}
}

// Items returns the persisted list, most recent first.
func (r RecentlyViewed) Items(ctx context.Context, sessionID string) []LineItem {
	return r.store.Items(ctx, sessionID, KeyRecentlyViewed)
}

// Record removes any existing entry with the same id, prepends the item
// stamped with the current time, and truncates to capacity. Eviction is by
// position, not by the stored timestamp.
func (r RecentlyViewed) Record(ctx context.Context, sessionID string, item LineItem) error {
	if item.ID == "" {
		return fmt.Errorf("recently viewed item id is required")
	}
	r.store.metrics.IncOp(KeyRecentlyViewed, "record")

	existing := r.Items(ctx, sessionID)
	item.Quantity = 0
	item.Variant = nil
	item.ViewedAt = r.now().UTC()

	items := make([]LineItem, 0, len(existing)+1)
	items = append(items, item)
	for _, entry := range existing {
		if entry.ID != item.ID {
			items = append(items, entry)
		}
	}
	if len(items) > r.capacity {
		items = items[:r.capacity]
	}

	if err := r.store.SetItems(ctx, sessionID, KeyRecentlyViewed, items); err != nil {
		return err
	}
	r.store.notify(KeyRecentlyViewed)
	return nil
}

// Clear empties the list.
func (r RecentlyViewed) Clear(ctx context.Context, sessionID string) error {
	return r.store.Clear(ctx, sessionID, KeyRecentlyViewed)
}
