package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroIdentity(t *testing.T) {
	pts := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 12.9716, Lon: 77.5946},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 90, Lon: 0},
	}
	for _, p := range pts {
		if d := DistanceMeters(p, p); d != 0 {
			t.Errorf("DistanceMeters(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]Point{
		{{Lat: 0, Lon: 0}, {Lat: 10, Lon: 10}},
		{{Lat: 12.9716, Lon: 77.5946}, {Lat: 28.7041, Lon: 77.1025}},
		{{Lat: -45, Lon: -170}, {Lat: 45, Lon: 170}},
	}
	for _, pair := range pairs {
		ab := DistanceMeters(pair[0], pair[1])
		ba := DistanceMeters(pair[1], pair[0])
		if diff := math.Abs(ab - ba); diff > 1e-6*ab {
			t.Errorf("asymmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// One hundredth of a degree of longitude on the equator is ~1113 m.
	d := DistanceMeters(Point{0, 0}, Point{0, 0.01})
	if d < 1100 || d > 1125 {
		t.Errorf("0.01 deg on equator = %v m, want ~1113 m", d)
	}

	// Antipodal points are half the Earth's circumference apart.
	d = DistanceMeters(Point{0, 0}, Point{0, 180})
	if math.Abs(d-20015086) > 1000 {
		t.Errorf("antipodal distance = %v m, want ~20015086 m", d)
	}

	// Bangalore to Delhi is roughly 1750 km.
	d = DistanceMeters(Point{12.9716, 77.5946}, Point{28.7041, 77.1025})
	if d < 1_700_000 || d > 1_800_000 {
		t.Errorf("Bangalore-Delhi = %v m, want ~1750 km", d)
	}
}
