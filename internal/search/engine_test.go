package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/geo"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// fakeSource applies the pushdown filter in memory the same way the
// class repository's SQL does: case-insensitive substring OR across
// name/description/location, inclusive price bounds, exact category,
// newest (highest id) first.
type fakeSource struct {
	classes []model.Class
	err     error
}

func (f *fakeSource) Query(_ context.Context, flt model.ClassFilter) ([]model.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Class{}
	for _, c := range f.classes {
		if flt.Text != "" {
			needle := strings.ToLower(flt.Text)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Description), needle) &&
				!strings.Contains(strings.ToLower(c.Location), needle) {
				continue
			}
		}
		if flt.MinPrice != nil && c.Price < *flt.MinPrice {
			continue
		}
		if flt.MaxPrice != nil && c.Price > *flt.MaxPrice {
			continue
		}
		if flt.CategoryID != 0 && c.CategoryID != flt.CategoryID {
			continue
		}
		out = append(out, c)
	}
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func fptr(v float64) *float64 { return &v }

func cls(id uint64, name string, price, rating float64, lat, lon *float64) model.Class {
	return model.Class{
		ID: id, Name: name, Location: "somewhere", Price: price, Rating: rating,
		Latitude: lat, Longitude: lon, CategoryID: 1, OwnerID: 1,
	}
}

func TestSearchInvalidPagination(t *testing.T) {
	e := NewEngine(&fakeSource{})
	for _, crit := range []Criteria{
		{Page: 0, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: -1, PageSize: -5},
	} {
		if _, err := e.Search(context.Background(), crit); !errors.Is(err, ErrInvalidPagination) {
			t.Errorf("Search(%+v) err = %v, want ErrInvalidPagination", crit, err)
		}
	}
}

func TestSearchPriceRangeSorted(t *testing.T) {
	src := &fakeSource{classes: []model.Class{
		cls(1, "yoga", 5, 0, nil, nil),
		cls(2, "karate", 20, 0, nil, nil),
		cls(3, "dance", 45, 0, nil, nil),
		cls(4, "swim", 60, 0, nil, nil),
	}}
	e := NewEngine(src)
	res, err := e.Search(context.Background(), Criteria{
		MinPrice: fptr(10), MaxPrice: fptr(50), SortBy: SortPrice, Page: 1, PageSize: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 || len(res.Classes) != 2 {
		t.Fatalf("total = %d, items = %d, want 2/2", res.Total, len(res.Classes))
	}
	if res.Classes[0].Price != 20 || res.Classes[1].Price != 45 {
		t.Errorf("prices = [%v, %v], want [20, 45]", res.Classes[0].Price, res.Classes[1].Price)
	}
}

func TestSearchProximityFilter(t *testing.T) {
	src := &fakeSource{classes: []model.Class{
		cls(1, "at origin", 10, 0, fptr(0), fptr(0)),
		cls(2, "a km away", 10, 0, fptr(0), fptr(0.01)),
		cls(3, "far away", 10, 0, fptr(10), fptr(10)),
		cls(4, "no coordinates", 10, 0, nil, nil),
	}}
	e := NewEngine(src)
	res, err := e.Search(context.Background(), Criteria{
		UserCoordinates: &geo.Point{Lat: 0, Lon: 0},
		MaxDistanceKm:   fptr(2),
		SortBy:          SortPrice,
		Page:            1, PageSize: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
	ids := map[uint64]bool{}
	for _, c := range res.Classes {
		ids[c.ID] = true
		if c.DistanceMeters == nil {
			t.Errorf("class %d missing distance annotation", c.ID)
		}
	}
	if !ids[1] || !ids[2] {
		t.Errorf("got ids %v, want {1,2}", ids)
	}
}

func TestSearchCoordinatesWithoutRadius(t *testing.T) {
	src := &fakeSource{classes: []model.Class{
		cls(1, "near", 10, 0, fptr(0), fptr(0.01)),
		cls(2, "no coordinates", 10, 0, nil, nil),
	}}
	e := NewEngine(src)
	res, err := e.Search(context.Background(), Criteria{
		UserCoordinates: &geo.Point{Lat: 0, Lon: 0},
		Page:            1, PageSize: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	// no radius: nothing is dropped, distances annotated where possible
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
	for _, c := range res.Classes {
		if c.ID == 1 && c.DistanceMeters == nil {
			t.Error("class 1 missing distance annotation")
		}
		if c.ID == 2 && c.DistanceMeters != nil {
			t.Error("coordinate-less class should have no distance")
		}
	}
}

func TestSearchRatingSortDescendingWithTiebreak(t *testing.T) {
	src := &fakeSource{classes: []model.Class{
		cls(1, "a", 10, 4.5, nil, nil),
		cls(2, "b", 10, 4.5, nil, nil),
		cls(3, "c", 10, 5.0, nil, nil),
		cls(4, "d", 10, 1.0, nil, nil),
	}}
	e := NewEngine(src)
	res, err := e.Search(context.Background(), Criteria{SortBy: SortRating, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	got := []uint64{}
	for _, c := range res.Classes {
		got = append(got, c.ID)
	}
	want := []uint64{3, 1, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSearchDefaultOrderNewestFirst(t *testing.T) {
	src := &fakeSource{classes: []model.Class{
		cls(1, "old", 10, 0, nil, nil),
		cls(2, "mid", 10, 0, nil, nil),
		cls(3, "new", 10, 0, nil, nil),
	}}
	e := NewEngine(src)
	res, err := e.Search(context.Background(), Criteria{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Classes[0].ID != 3 || res.Classes[2].ID != 1 {
		t.Errorf("default order not newest-first: %v", res.Classes)
	}
}

func TestSearchPaginationCoverage(t *testing.T) {
	var classes []model.Class
	for i := 1; i <= 23; i++ {
		classes = append(classes, cls(uint64(i), "c", float64(i), 0, nil, nil))
	}
	src := &fakeSource{classes: classes}
	e := NewEngine(src)

	seen := map[uint64]int{}
	pageSize := 5
	var first Result
	for page := 1; ; page++ {
		res, err := e.Search(context.Background(), Criteria{SortBy: SortPrice, Page: page, PageSize: pageSize})
		if err != nil {
			t.Fatal(err)
		}
		if page == 1 {
			first = res
		}
		if res.Total != 23 {
			t.Fatalf("page %d total = %d, want 23", page, res.Total)
		}
		if len(res.Classes) == 0 {
			break
		}
		for _, c := range res.Classes {
			seen[c.ID]++
		}
	}
	if first.TotalPages != 5 {
		t.Errorf("totalPages = %d, want 5", first.TotalPages)
	}
	if len(seen) != 23 {
		t.Fatalf("saw %d distinct ids, want 23", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %d appeared %d times", id, n)
		}
	}
}

func TestSearchPageBeyondEnd(t *testing.T) {
	src := &fakeSource{classes: []model.Class{cls(1, "a", 1, 0, nil, nil)}}
	e := NewEngine(src)
	res, err := e.Search(context.Background(), Criteria{Page: 10, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || len(res.Classes) != 0 {
		t.Errorf("total = %d, items = %d, want 1/0", res.Total, len(res.Classes))
	}
}

func TestSearchSourceErrorPropagates(t *testing.T) {
	boom := errors.New("storage down")
	e := NewEngine(&fakeSource{err: boom})
	if _, err := e.Search(context.Background(), Criteria{Page: 1, PageSize: 10}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
