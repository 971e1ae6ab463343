package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/search"
)

type staticSource struct {
	classes []model.Class
}

func (s *staticSource) Query(_ context.Context, f model.ClassFilter) ([]model.Class, error) {
	out := []model.Class{}
	for _, c := range s.classes {
		if f.MinPrice != nil && c.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && c.Price > *f.MaxPrice {
			continue
		}
		if f.CategoryID != 0 && c.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func f64(v float64) *float64 { return &v }

func newSearchHandler() *DiscoveryHandler {
	src := &staticSource{classes: []model.Class{
		{ID: 1, Name: "Yoga", Location: "Downtown", Price: 10, Rating: 4.5,
			CategoryID: 1, Latitude: f64(0), Longitude: f64(0)},
		{ID: 2, Name: "Pottery", Location: "Midtown", Price: 30, Rating: 3.0,
			CategoryID: 2, Latitude: f64(0), Longitude: f64(0.01)},
		{ID: 3, Name: "Chess", Location: "Uptown", Price: 50, Rating: 5.0,
			CategoryID: 1, Latitude: f64(10), Longitude: f64(10)},
	}}
	return NewDiscoveryHandler(search.NewEngine(src))
}

func doSearch(t *testing.T, query string) (*httptest.ResponseRecorder, search.Result) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/classes?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newSearchHandler().Search(c); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	var res search.Result
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, res
}

func TestSearchDefaults(t *testing.T) {
	rec, res := doSearch(t, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if res.Total != 3 || res.Page != 1 {
		t.Fatalf("got total=%d page=%d, want 3/1", res.Total, res.Page)
	}
}

func TestSearchPriceAndCategory(t *testing.T) {
	_, res := doSearch(t, "minPrice=20&maxPrice=60&category=1")
	if res.Total != 1 || res.Classes[0].ID != 3 {
		t.Fatalf("got %+v, want only class 3", res.Classes)
	}
}

func TestSearchProximity(t *testing.T) {
	_, res := doSearch(t, "coordinates=0,0&distance=2")
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2 within 2km", res.Total)
	}
	for _, c := range res.Classes {
		if c.DistanceMeters == nil {
			t.Fatalf("class %d missing distance annotation", c.ID)
		}
	}
}

func TestSearchBadInputs(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad page", "page=0"},
		{"bad limit", "limit=abc"},
		{"bad coordinates", "coordinates=abc"},
		{"coordinates out of range", "coordinates=91,0"},
		{"distance without coordinates", "distance=5"},
		{"bad sort", "sortBy=name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := doSearch(t, tc.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchJSONArrayCoordinates(t *testing.T) {
	_, res := doSearch(t, "coordinates=%5B0%2C0%5D&distance=2")
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
}
