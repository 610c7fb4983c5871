package collections

import (
	"context"
	"fmt"
)

// Wishlist holds at most one entry per product id; adds are idempotent.
type Wishlist struct {
	store *Store
}

func NewWishlist(store *Store) Wishlist {
	return Wishlist{store: store}
}

// Items returns the persisted wishlist, empty on any storage failure.
func (w Wishlist) Items(ctx context.Context, sessionID string) []LineItem {
	return w.store.Items(ctx, sessionID, KeyWishlist)
}

// Add appends the item unless its id is already present. Re-adding an
// existing id is a no-op and does not rewrite or notify.
func (w Wishlist) Add(ctx context.Context, sessionID string, item LineItem) error {
	if item.ID == "" {
		return fmt.Errorf("wishlist item id is required")
	}
	w.store.metrics.IncOp(KeyWishlist, "add")

	items := w.Items(ctx, sessionID)
	for _, entry := range items {
		if entry.ID == item.ID {
			return nil
		}
	}

	item.Quantity = 0
	item.Variant = nil
	items = append(items, item)

	if err := w.store.SetItems(ctx, sessionID, KeyWishlist, items); err != nil {
		return err
	}
	w.store.notify(KeyWishlist)
	return nil
}

// Remove drops the entry with the given id; missing ids are a no-op.
func (w Wishlist) Remove(ctx context.Context, sessionID, id string) error {
	w.store.metrics.IncOp(KeyWishlist, "remove")

	items := w.Items(ctx, sessionID)
	kept := items[:0]
	for _, entry := range items {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	if err := w.store.SetItems(ctx, sessionID, KeyWishlist, kept); err != nil {
		return err
	}
	w.store.notify(KeyWishlist)
	return nil
}

// Contains reports whether the product id is wishlisted.
func (w Wishlist) Contains(ctx context.Context, sessionID, id string) bool {
	for _, entry := range w.Items(ctx, sessionID) {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// Clear empties the wishlist.
func (w Wishlist) Clear(ctx context.Context, sessionID string) error {
	return w.store.Clear(ctx, sessionID, KeyWishlist)
}

// Subscribe registers an observer for wishlist writes.
func (w Wishlist) Subscribe(fn func(collection string)) UnsubscribeFunc {
	return w.store.Subscribe(KeyWishlist, fn)
}
