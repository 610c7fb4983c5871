package controllers

import (
	"context"
	"net/http"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/internal/authctx"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type orderPlacer interface {
	PlaceOrder(ctx context.Context, token string, input upstream.OrderInput) (upstream.Order, error)
}

// Checkout submits the session's cart as an order upstream. The cart is
// cleared only after the order is accepted; a failed submission leaves it
// untouched.
func Checkout(cart collections.Cart, auth authctx.Service, placer orderPlacer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth == nil || placer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bearer, ok := auth.Token(r.Context(), sessionID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to check out"))
			return
		}

		items := cart.Items(r.Context(), sessionID)
		if len(items) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		input := upstream.OrderInput{Items: make([]upstream.OrderItem, len(items))}
		for i, item := range items {
			input.Items[i] = upstream.OrderItem{
				ProductID: item.ID,
				Quantity:  item.Quantity,
				Variant:   item.Variant,
			}
		}

		order, err := placer.PlaceOrder(r.Context(), bearer, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order"))
			return
		}

		if err := cart.Clear(r.Context(), sessionID); err != nil && logg != nil {
			// The order went through; a stale cart is recoverable.
			ctx := logg.WithField(r.Context(), "order_id", order.ID)
			logg.Warn(ctx, "cart clear after checkout failed")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
