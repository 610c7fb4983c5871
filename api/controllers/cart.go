package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/api/middleware"
	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/api/validators"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type collectionResponse struct {
	Items []collections.LineItem `json:"items"`
	Count int                    `json:"count"`
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

// CartFetch returns the cart contents and the summed item count.
func CartFetch(cart collections.Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, collectionResponse{
			Items: cart.Items(r.Context(), sessionID),
			Count: cart.ItemCount(r.Context(), sessionID),
		})
	}
}

type cartAddRequest struct {
	ID       string              `json:"id" validate:"required"`
	Name     string              `json:"name" validate:"required"`
	Price    decimal.Decimal     `json:"price"`
	Image    string              `json:"image"`
	Quantity int                 `json:"quantity"`
	Variant  collections.Variant `json:"variant"`
}

// CartAdd merges an item into the cart.
func CartAdd(cart collections.Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := collections.LineItem{
			ID:      payload.ID,
			Name:    payload.Name,
			Price:   payload.Price,
			Image:   payload.Image,
			Variant: payload.Variant,
		}
		if err := cart.Add(r.Context(), sessionID, item, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add to cart"))
			return
		}

		responses.WriteSuccess(w, collectionResponse{
			Items: cart.Items(r.Context(), sessionID),
			Count: cart.ItemCount(r.Context(), sessionID),
		})
	}
}

type cartItemUpdateRequest struct {
	Quantity int                 `json:"quantity"`
	Variant  collections.Variant `json:"variant"`
}

// CartUpdateItem sets the quantity for one (id, variant) entry; a quantity of
// zero removes it.
func CartUpdateItem(cart collections.Cart, logg *logger.Logger) http.HandlerFunc {
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

		var payload cartItemUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := cart.UpdateQuantity(r.Context(), sessionID, productID, payload.Variant, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item"))
			return
		}

		responses.WriteSuccess(w, collectionResponse{
			Items: cart.Items(r.Context(), sessionID),
			Count: cart.ItemCount(r.Context(), sessionID),
		})
	}
}

type cartItemRemoveRequest struct {
	Variant collections.Variant `json:"variant"`
}

// CartRemoveItem drops one (id, variant) entry. The variant travels in the
// body since it is a full option map, not a path-friendly scalar.
func CartRemoveItem(cart collections.Cart, logg *logger.Logger) http.HandlerFunc {
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

		var payload cartItemRemoveRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if err := cart.Remove(r.Context(), sessionID, productID, payload.Variant); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item"))
			return
		}

		responses.WriteSuccess(w, collectionResponse{
			Items: cart.Items(r.Context(), sessionID),
			Count: cart.ItemCount(r.Context(), sessionID),
		})
	}
}

// CartClear empties the cart.
func CartClear(cart collections.Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := cart.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart"))
			return
		}
		responses.WriteSuccess(w, collectionResponse{Items: []collections.LineItem{}, Count: 0})
	}
}
