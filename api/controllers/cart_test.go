package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/api/middleware"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	"github.com/marcosovalle/shopfront-backend/pkg/kv"
)

func newCollectionStore(t *testing.T) *collections.Store {
	t.Helper()
	store, err := collections.NewStore(kv.NewMemory(), nil, nil)
	if err != nil {
		t.Fatalf("new collection store: %v", err)
	}
	return store
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func decodeData[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartAddAndFetch(t *testing.T) {
	cart := collections.NewCart(newCollectionStore(t))

	add := CartAdd(cart, nil)
	body := `{"id":"p1","name":"Mason Jar","price":"4.50","quantity":2,"variant":{"size":"32oz"}}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), "sess-1")
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	data := decodeData[collectionResponse](t, resp)
	if data.Count != 2 {
		t.Fatalf("expected count 2 got %d", data.Count)
	}
	if len(data.Items) != 1 || data.Items[0].ID != "p1" {
		t.Fatalf("unexpected items %+v", data.Items)
	}

	fetch := CartFetch(cart, nil)
	req = withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "sess-1")
	resp = httptest.NewRecorder()
	fetch.ServeHTTP(resp, req)

	data = decodeData[collectionResponse](t, resp)
	if len(data.Items) != 1 || !data.Items[0].Price.Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("unexpected fetched items %+v", data.Items)
	}
}

func TestCartAddRejectsMissingID(t *testing.T) {
	cart := collections.NewCart(newCollectionStore(t))

	handler := CartAdd(cart, nil)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"name":"x"}`)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddWithoutSessionContext(t *testing.T) {
	cart := collections.NewCart(newCollectionStore(t))

	handler := CartAdd(cart, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"id":"p1","name":"x"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestCartUpdateItemToZeroRemoves(t *testing.T) {
	store := newCollectionStore(t)
	cart := collections.NewCart(store)

	add := CartAdd(cart, nil)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"id":"p1","name":"Jar","quantity":3}`)), "sess-1")
	add.ServeHTTP(httptest.NewRecorder(), req)

	update := CartUpdateItem(cart, nil)
	req = withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/p1", strings.NewReader(`{"quantity":0}`)), "sess-1")
	req = withURLParam(req, "productId", "p1")
	resp := httptest.NewRecorder()
	update.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	data := decodeData[collectionResponse](t, resp)
	if len(data.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", data.Items)
	}
}

func TestCartRemoveItemWithVariant(t *testing.T) {
	cart := collections.NewCart(newCollectionStore(t))

	add := CartAdd(cart, nil)
	for _, body := range []string{
		`{"id":"p1","name":"Jar","quantity":1,"variant":{"size":"16oz"}}`,
		`{"id":"p1","name":"Jar","quantity":1,"variant":{"size":"32oz"}}`,
	} {
		req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), "sess-1")
		add.ServeHTTP(httptest.NewRecorder(), req)
	}

	remove := CartRemoveItem(cart, nil)
	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/p1", strings.NewReader(`{"variant":{"size":"16oz"}}`)), "sess-1")
	req = withURLParam(req, "productId", "p1")
	resp := httptest.NewRecorder()
	remove.ServeHTTP(resp, req)

	data := decodeData[collectionResponse](t, resp)
	if len(data.Items) != 1 {
		t.Fatalf("expected one remaining entry, got %+v", data.Items)
	}
	if data.Items[0].Variant["size"] != "32oz" {
		t.Fatalf("wrong entry removed: %+v", data.Items[0])
	}
}

func TestCartClear(t *testing.T) {
	cart := collections.NewCart(newCollectionStore(t))

	add := CartAdd(cart, nil)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"id":"p1","name":"Jar"}`)), "sess-1")
	add.ServeHTTP(httptest.NewRecorder(), req)

	clear := CartClear(cart, nil)
	req = withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	clear.ServeHTTP(resp, req)

	data := decodeData[collectionResponse](t, resp)
	if data.Count != 0 || len(data.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", data)
	}
}
