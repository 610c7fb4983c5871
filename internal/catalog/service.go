package catalog

import (
	"context"
	"errors"

	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
	"github.com/marcosovalle/shopfront-backend/pkg/pagination"
)

// ErrProductNotFound is the sentinel the upstream client maps 404s to.
var ErrProductNotFound = errors.New("product not found")

type productSource interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
}

// BrowseInput captures the inputs for one browse request.
type BrowseInput struct {
	Filter FilterSpec
	Page   pagination.Request
}

// Service exposes catalog browsing over the upstream product API.
type Service interface {
	Browse(ctx context.Context, input BrowseInput) (ProductPageDTO, error)
	GetProduct(ctx context.Context, id string) (Product, error)
}

type service struct {
	source productSource
}

// NewService builds a catalog service over the provided product source.
func NewService(source productSource) (Service, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product source is required")
	}
	return &service{source: source}, nil
}

// Browse pulls the candidate list from upstream and applies the filter and
// page window locally. Filtering stays client-side so the upstream API only
// needs a dumb list endpoint.
func (s *service) Browse(ctx context.Context, input BrowseInput) (ProductPageDTO, error) {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return ProductPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return FilterAndPaginate(products, input.Filter, input.Page)
}

// GetProduct returns one product by id.
func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	if id == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.source.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
