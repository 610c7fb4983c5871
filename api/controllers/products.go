package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marcosovalle/shopfront-backend/api/responses"
	"github.com/marcosovalle/shopfront-backend/api/validators"
	"github.com/marcosovalle/shopfront-backend/internal/catalog"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
)

type reviewLister interface {
	ListReviews(ctx context.Context, productID string) ([]upstream.Review, error)
}

// ProductsBrowse lists the catalog filtered and paginated by query parameters:
// category, priceMin, priceMax, inStock, minRating, page, pageSize.
func ProductsBrowse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParsePageRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		spec, err := parseFilterSpec(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Browse(r.Context(), catalog.BrowseInput{Filter: spec, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseFilterSpec(r *http.Request) (catalog.FilterSpec, error) {
	priceMin, err := validators.ParseQueryDecimal(r, "priceMin")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	priceMax, err := validators.ParseQueryDecimal(r, "priceMax")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	if priceMax.IsPositive() && priceMax.LessThan(priceMin) {
		return catalog.FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "priceMax must not be below priceMin")
	}
	inStock, err := validators.ParseQueryBool(r, "inStock")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	minRating, err := validators.ParseQueryFloat(r, "minRating", 0, 0, 5)
	if err != nil {
		return catalog.FilterSpec{}, err
	}

	return catalog.FilterSpec{
		Category:  strings.TrimSpace(r.URL.Query().Get("category")),
		PriceMin:  priceMin,
		PriceMax:  priceMax,
		InStock:   inStock,
		MinRating: minRating,
	}, nil
}

// ProductFetch returns one product by id.
func ProductFetch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type reviewsResponse struct {
	ProductID string            `json:"product_id"`
	Reviews   []upstream.Review `json:"reviews"`
}

// ProductReviews proxies the upstream review list for one product.
func ProductReviews(reviews reviewLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reviews == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review source unavailable"))
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		list, err := reviews.ListReviews(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews"))
			return
		}
		responses.WriteSuccess(w, reviewsResponse{ProductID: productID, Reviews: list})
	}
}
