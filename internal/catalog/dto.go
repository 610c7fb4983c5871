package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/pkg/pagination"
)

// Product is the catalog view the storefront renders. It mirrors the upstream
// API's product resource; this service never owns product data.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	InStock     bool            `json:"in_stock"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
}

// FilterSpec carries the user-selected browse constraints.
type FilterSpec struct {
	// Category filters exact matches; empty disables the predicate.
	Category string
	// PriceMin and PriceMax are inclusive bounds. A zero PriceMax leaves the
	// upper bound open so an unset query parameter does not hide everything.
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	// InStock true keeps only in-stock products; false keeps everything.
	InStock bool
	// MinRating is an inclusive threshold; zero disables the predicate.
	MinRating float64
}

// ProductPageDTO is the browse response payload.
type ProductPageDTO struct {
	Items      []Product         `json:"items"`
	Pagination pagination.Result `json:"pagination"`
}
