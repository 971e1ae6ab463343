package geo

import (
	"errors"
	"testing"
)

func TestParseCoordinatesAcceptedShapes(t *testing.T) {
	want := Point{Lat: 12.5, Lon: 77.3}
	inputs := []any{
		[]float64{12.5, 77.3},
		[]any{12.5, 77.3},
		"12.5,77.3",
		" 12.5 , 77.3 ",
		"[12.5,77.3]",
		"[12.5, 77.3]",
	}
	for _, in := range inputs {
		p, err := ParseCoordinates(in)
		if err != nil {
			t.Fatalf("ParseCoordinates(%v): %v", in, err)
		}
		if p == nil || *p != want {
			t.Errorf("ParseCoordinates(%v) = %v, want %v", in, p, want)
		}
	}
}

func TestParseCoordinatesAbsent(t *testing.T) {
	for _, in := range []any{nil, "", "   "} {
		p, err := ParseCoordinates(in)
		if err != nil {
			t.Fatalf("ParseCoordinates(%v): %v", in, err)
		}
		if p != nil {
			t.Errorf("ParseCoordinates(%v) = %v, want nil", in, p)
		}
	}
}

func TestParseCoordinatesInvalid(t *testing.T) {
	inputs := []any{
		"abc",
		"1,2,3",
		"x,y",
		"[1]",
		"[1,2,3]",
		`["a","b"]`,
		[]float64{1},
		[]any{"a", "b"},
		42,
		"91,0",    // latitude out of range
		"0,181",   // longitude out of range
		"-90.5,0", // latitude out of range
	}
	for _, in := range inputs {
		if _, err := ParseCoordinates(in); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("ParseCoordinates(%v) err = %v, want ErrInvalidCoordinate", in, err)
		}
	}
}

func TestParseCoordinatesBoundaryValues(t *testing.T) {
	for _, in := range []string{"90,180", "-90,-180", "0,0"} {
		if _, err := ParseCoordinates(in); err != nil {
			t.Errorf("ParseCoordinates(%q): %v, want success", in, err)
		}
	}
}
