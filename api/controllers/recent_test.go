package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marcosovalle/shopfront-backend/internal/collections"
)

func TestRecentlyViewedRecordOrdersMostRecentFirst(t *testing.T) {
	recent := collections.NewRecentlyViewed(newCollectionStore(t), 10)
	record := RecentlyViewedRecord(recent, nil)

	for _, id := range []string{"p1", "p2", "p3"} {
		body := fmt.Sprintf(`{"id":%q,"name":"Product %s"}`, id, id)
		req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/recently-viewed", strings.NewReader(body)), "sess-1")
		resp := httptest.NewRecorder()
		record.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("record %s: expected 200 got %d", id, resp.Code)
		}
	}

	fetch := RecentlyViewedFetch(recent, nil)
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/recently-viewed", nil), "sess-1")
	resp := httptest.NewRecorder()
	fetch.ServeHTTP(resp, req)

	data := decodeData[recentlyViewedResponse](t, resp)
	if len(data.Items) != 3 || data.Items[0].ID != "p3" || data.Items[2].ID != "p1" {
		t.Fatalf("unexpected order %+v", data.Items)
	}
}

func TestRecentlyViewedClear(t *testing.T) {
	recent := collections.NewRecentlyViewed(newCollectionStore(t), 10)

	record := RecentlyViewedRecord(recent, nil)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/recently-viewed", strings.NewReader(`{"id":"p1","name":"Jar"}`)), "sess-1")
	record.ServeHTTP(httptest.NewRecorder(), req)

	clear := RecentlyViewedClear(recent, nil)
	req = withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/recently-viewed", nil), "sess-1")
	resp := httptest.NewRecorder()
	clear.ServeHTTP(resp, req)

	data := decodeData[recentlyViewedResponse](t, resp)
	if len(data.Items) != 0 {
		t.Fatalf("expected cleared history, got %+v", data.Items)
	}
}
