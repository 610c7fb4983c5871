package collections

import (
	"context"
	"fmt"
)

// Cart holds line items keyed by (product id, variant). Adding an existing
// pair merges quantities; driving a quantity to zero removes the entry.
type Cart struct {
	store *Store
}

func NewCart(store *Store) Cart {
	return Cart{store: store}
}

// Items returns the persisted cart, empty on any storage failure.
func (c Cart) Items(ctx context.Context, sessionID string) []LineItem {
	return c.store.Items(ctx, sessionID, KeyCart)
}

// Add merges the item into the cart. An existing (id, variant) entry has its
// quantity incremented by qty; otherwise the item is appended. A qty below 1
// defaults to 1.
func (c Cart) Add(ctx context.Context, sessionID string, item LineItem, qty int) error {
	if item.ID == "" {
		return fmt.Errorf("cart item id is required")
	}
	if qty < 1 {
		qty = 1
	}
	c.store.metrics.IncOp(KeyCart, "add")

	items := c.Items(ctx, sessionID)
	merged := false
	for i := range items {
		if items[i].matchesCartIdentity(item.ID, item.Variant) {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = qty
		items = append(items, item)
	}

	if err := c.store.SetItems(ctx, sessionID, KeyCart, items); err != nil {
		return err
	}
	c.store.notify(KeyCart)
	return nil
}

// Remove drops the (id, variant) entry. Missing entries are a no-op, and the
// unchanged collection is not rewritten or notified.
func (c Cart) Remove(ctx context.Context, sessionID, id string, variant Variant) error {
	c.store.metrics.IncOp(KeyCart, "remove")

	items := c.Items(ctx, sessionID)
	kept := items[:0]
	for _, entry := range items {
		if !entry.matchesCartIdentity(id, variant) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	if err := c.store.SetItems(ctx, sessionID, KeyCart, kept); err != nil {
		return err
	}
	c.store.notify(KeyCart)
	return nil
}

// UpdateQuantity sets the quantity for the (id, variant) entry; a quantity of
// zero or below removes it.
func (c Cart) UpdateQuantity(ctx context.Context, sessionID, id string, variant Variant, qty int) error {
	if qty <= 0 {
		return c.Remove(ctx, sessionID, id, variant)
	}
	c.store.metrics.IncOp(KeyCart, "update_quantity")

	items := c.Items(ctx, sessionID)
	changed := false
	for i := range items {
		if items[i].matchesCartIdentity(id, variant) {
			items[i].Quantity = qty
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	if err := c.store.SetItems(ctx, sessionID, KeyCart, items); err != nil {
		return err
	}
	c.store.notify(KeyCart)
	return nil
}

// ItemCount sums quantities across all entries.
func (c Cart) ItemCount(ctx context.Context, sessionID string) int {
	total := 0
	for _, entry := range c.Items(ctx, sessionID) {
		total += entry.Quantity
	}
	return total
}

// Clear empties the cart.
func (c Cart) Clear(ctx context.Context, sessionID string) error {
	return c.store.Clear(ctx, sessionID, KeyCart)
}

// Subscribe registers an observer for cart writes.
func (c Cart) Subscribe(fn func(collection string)) UnsubscribeFunc {
	return c.store.Subscribe(KeyCart, fn)
}
