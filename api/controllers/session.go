package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/internal/authctx"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type sessionResetResponse struct {
	Status string `json:"status"`
}

// SessionReset wipes everything the session has accumulated: cart, wishlist,
// viewing history, and auth state. Every step is attempted even when an
// earlier one fails; the failures come back aggregated.
func SessionReset(
	cart collections.Cart,
	wishlist collections.Wishlist,
	recent collections.RecentlyViewed,
	auth authctx.Service,
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		combined := multierr.Combine(
			cart.Clear(ctx, sessionID),
			wishlist.Clear(ctx, sessionID),
			recent.Clear(ctx, sessionID),
		)
		if auth != nil {
			combined = multierr.Append(combined, auth.Logout(ctx, sessionID))
		}

		if combined != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, combined, "session reset incomplete"))
			return
		}
		responses.WriteSuccess(w, sessionResetResponse{Status: "reset"})
	}
}
