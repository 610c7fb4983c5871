package pagination

import (
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
)

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any page can request.
	MaxPageSize = 100
)

// Request holds page-number pagination inputs from controllers.
type Request struct {
	Page     int
	PageSize int
}

// Result carries the page metadata returned alongside the sliced items.
type Result struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Normalize bounds the inputs. Page is 1-based; a missing or negative page
// becomes 1. A page size below 1 is rejected so no caller can divide by zero
// downstream; defaulting an absent page size is the HTTP layer's job.
func (r Request) Normalize() (Request, error) {
	if r.PageSize < 1 {
		return Request{}, pkgerrors.New(pkgerrors.CodeValidation, "page size must be a positive integer")
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	if r.Page < 1 {
		r.Page = 1
	}
	return r, nil
}

// TotalPages computes ceil(totalItems / pageSize), zero when empty.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Slice returns the requested window of items, preserving the source order.
// A page past the end yields an empty slice, not an error.
func Slice[T any](items []T, req Request) []T {
	start := (req.Page - 1) * req.PageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Paginate slices items and fills in the page metadata in one call.
func Paginate[T any](items []T, req Request) ([]T, Result, error) {
	normalized, err := req.Normalize()
	if err != nil {
		return nil, Result{}, err
	}
	return Slice(items, normalized), Result{
		Page:       normalized.Page,
		PageSize:   normalized.PageSize,
		TotalItems: len(items),
		TotalPages: TotalPages(len(items), normalized.PageSize),
	}, nil
}
