package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/api/validators"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type wishlistResponse struct {
	Items []collections.LineItem `json:"items"`
	Count int                    `json:"count"`
}

// WishlistFetch returns the wishlist contents.
func WishlistFetch(wishlist collections.Wishlist, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := wishlist.Items(r.Context(), sessionID)
		responses.WriteSuccess(w, wishlistResponse{Items: items, Count: len(items)})
	}
}

type wishlistAddRequest struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// WishlistAdd appends an item; re-adding an existing id is a no-op.
func WishlistAdd(wishlist collections.Wishlist, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload wishlistAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := collections.LineItem{
			ID:    payload.ID,
			Name:  payload.Name,
			Price: payload.Price,
			Image: payload.Image,
		}
		if err := wishlist.Add(r.Context(), sessionID, item); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add to wishlist"))
			return
		}

		items := wishlist.Items(r.Context(), sessionID)
		responses.WriteSuccess(w, wishlistResponse{Items: items, Count: len(items)})
	}
}

// WishlistRemove drops the entry with the given product id.
func WishlistRemove(wishlist collections.Wishlist, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := wishlist.Remove(r.Context(), sessionID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove from wishlist"))
			return
		}

		items := wishlist.Items(r.Context(), sessionID)
		responses.WriteSuccess(w, wishlistResponse{Items: items, Count: len(items)})
	}
}

type wishlistContainsResponse struct {
	ID        string `json:"id"`
	Contained bool   `json:"contained"`
}

// WishlistContains reports whether the product id is wishlisted.
func WishlistContains(wishlist collections.Wishlist, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		responses.WriteSuccess(w, wishlistContainsResponse{
			ID:        productID,
			Contained: wishlist.Contains(r.Context(), sessionID, productID),
		})
	}
}

// WishlistClear empties the wishlist.
func WishlistClear(wishlist collections.Wishlist, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := wishlist.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear wishlist"))
			return
		}
		responses.WriteSuccess(w, wishlistResponse{Items: []collections.LineItem{}, Count: 0})
	}
}
