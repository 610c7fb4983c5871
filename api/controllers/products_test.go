package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/internal/catalog"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
)

type stubProductSource struct {
	products []catalog.Product
	err      error
}

func (s *stubProductSource) ListProducts(context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s *stubProductSource) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	if s.err != nil {
		return catalog.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrProductNotFound
}

func newCatalogService(t *testing.T, source *stubProductSource) catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(source)
	if err != nil {
		t.Fatalf("new catalog service: %v", err)
	}
	return svc
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Mason Jar", Category: "jars", Price: decimal.RequireFromString("4.50"), InStock: true, Rating: 4.4},
		{ID: "p2", Name: "Mylar Bag", Category: "bags", Price: decimal.RequireFromString("0.35"), InStock: true, Rating: 4.9},
		{ID: "p3", Name: "Glass Jar", Category: "jars", Price: decimal.RequireFromString("12.00"), InStock: false, Rating: 3.1},
	}
}

func TestProductsBrowseAppliesQueryFilters(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{products: sampleProducts()})

	handler := ProductsBrowse(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=jars&inStock=true", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	data := decodeData[catalog.ProductPageDTO](t, resp)
	if len(data.Items) != 1 || data.Items[0].ID != "p1" {
		t.Fatalf("unexpected items %+v", data.Items)
	}
	if data.Pagination.TotalItems != 1 {
		t.Fatalf("unexpected pagination %+v", data.Pagination)
	}
}

func TestProductsBrowseDefaultsPageSize(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{products: sampleProducts()})

	handler := ProductsBrowse(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	data := decodeData[catalog.ProductPageDTO](t, resp)
	if data.Pagination.PageSize != 12 {
		t.Fatalf("expected default page size 12 got %d", data.Pagination.PageSize)
	}
}

func TestProductsBrowseRejectsZeroPageSize(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{products: sampleProducts()})

	handler := ProductsBrowse(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?pageSize=0", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductsBrowseRejectsInvertedPriceRange(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{products: sampleProducts()})

	handler := ProductsBrowse(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?priceMin=10&priceMax=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductsBrowseUpstreamFailure(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{err: errors.New("connection refused")})

	handler := ProductsBrowse(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestProductFetch(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{products: sampleProducts()})

	handler := ProductFetch(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p2", nil)
	req = withURLParam(req, "productId", "p2")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	data := decodeData[catalog.Product](t, resp)
	if data.Name != "Mylar Bag" {
		t.Fatalf("unexpected product %+v", data)
	}
}

func TestProductFetchNotFound(t *testing.T) {
	svc := newCatalogService(t, &stubProductSource{})

	handler := ProductFetch(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ghost", nil)
	req = withURLParam(req, "productId", "ghost")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

type stubReviewLister struct {
	reviews []upstream.Review
	err     error
}

func (s stubReviewLister) ListReviews(context.Context, string) ([]upstream.Review, error) {
	return s.reviews, s.err
}

func TestProductReviews(t *testing.T) {
	handler := ProductReviews(stubReviewLister{reviews: []upstream.Review{{ID: "r1", Author: "Dana"}}}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p1/reviews", nil)
	req = withURLParam(req, "productId", "p1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	data := decodeData[reviewsResponse](t, resp)
	if len(data.Reviews) != 1 || data.Reviews[0].Author != "Dana" {
		t.Fatalf("unexpected reviews %+v", data.Reviews)
	}
}

func TestProductReviewsUpstreamFailure(t *testing.T) {
	handler := ProductReviews(stubReviewLister{err: errors.New("timeout")}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p1/reviews", nil)
	req = withURLParam(req, "productId", "p1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
