package collections

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Storage field names under each session. The names are part of the persisted
// layout and must not change without a data migration.
const (
	KeyCart           = "cart"
	KeyWishlist       = "wishlist"
	KeyRecentlyViewed = "recentlyViewed"
	KeyAuthToken      = "authToken"
	KeyUserData       = "userData"
	KeyTheme          = "theme"
)

// DefaultRecentlyViewedCap bounds the recently-viewed collection.
const DefaultRecentlyViewedCap = 10

// Variant maps a product option name to the selected value (e.g. color, size).
type Variant map[string]string

// Key returns a canonical text form with keys sorted, so two variants with the
// same pairs compare equal regardless of map insertion order.
func (v Variant) Key() string {
	if len(v) == 0 {
		return ""
	}
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v[name])
	}
	return b.String()
}

// LineItem is one product entry inside a persisted collection. Quantity and
// Variant are cart-only; ViewedAt is recently-viewed-only.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
	Variant  Variant         `json:"variant,omitempty"`
	ViewedAt time.Time       `json:"viewedAt,omitzero"`
}

// matchesCartIdentity reports whether the entry carries the (id, variant) pair.
func (li LineItem) matchesCartIdentity(id string, variant Variant) bool {
	return li.ID == id && li.Variant.Key() == variant.Key()
}
