package catalog

import (
	"github.com/marcosovalle/shopfront-backend/pkg/pagination"
)

// FilterAndPaginate retains products matching every enabled predicate, then
// slices out the requested page. One linear pass; the source order is
// preserved, never re-sorted. A page past the end yields an empty page with
// intact metadata; a non-positive page size is a validation error.
func FilterAndPaginate(products []Product, spec FilterSpec, req pagination.Request) (ProductPageDTO, error) {
	retained := make([]Product, 0, len(products))
	for _, product := range products {
		if spec.matches(product) {
			retained = append(retained, product)
		}
	}

	items, meta, err := pagination.Paginate(retained, req)
	if err != nil {
		return ProductPageDTO{}, err
	}
	return ProductPageDTO{Items: items, Pagination: meta}, nil
}

func (spec FilterSpec) matches(product Product) bool {
	if spec.Category != "" && spec.Category != product.Category {
		return false
	}
	if product.Price.LessThan(spec.PriceMin) {
		return false
	}
	if spec.PriceMax.IsPositive() && product.Price.GreaterThan(spec.PriceMax) {
		return false
	}
	if spec.InStock && !product.InStock {
		return false
	}
	if spec.MinRating > 0 && product.Rating < spec.MinRating {
		return false
	}
	return true
}
