package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/api/validators"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type recentlyViewedResponse struct {
	Items []collections.LineItem `json:"items"`
}

// RecentlyViewedFetch returns the viewing history, most recent first.
func RecentlyViewedFetch(recent collections.RecentlyViewed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recentlyViewedResponse{Items: recent.Items(r.Context(), sessionID)})
	}
}

type recentlyViewedRecordRequest struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// RecentlyViewedRecord registers a product view.
func RecentlyViewedRecord(recent collections.RecentlyViewed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recentlyViewedRecordRequest
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
		if err := recent.Record(r.Context(), sessionID, item); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record product view"))
			return
		}

		responses.WriteSuccess(w, recentlyViewedResponse{Items: recent.Items(r.Context(), sessionID)})
	}
}

// RecentlyViewedClear empties the viewing history.
func RecentlyViewedClear(recent collections.RecentlyViewed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := recent.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear recently viewed"))
			return
		}
		responses.WriteSuccess(w, recentlyViewedResponse{Items: []collections.LineItem{}})
	}
}
