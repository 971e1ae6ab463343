package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate is returned when a coordinate value cannot be
// normalized into a [latitude, longitude] pair. Handlers should
// translate this into an HTTP 400 response. The wrapped message always
// states what was expected so it can be shown to API clients as-is.
var ErrInvalidCoordinate = errors.New("invalid coordinate format")

// ParseCoordinates normalizes the coordinate shapes accepted by the API
// into a validated Point. Clients historically sent coordinates three
// different ways, so all of them are accepted here and nowhere else:
//
//   - a native two-element numeric array ([]float64 or JSON-decoded []any)
//   - a comma-separated string: "12.5,77.3"
//   - a JSON array string: "[12.5,77.3]"
//
// A nil or empty input means no coordinates were supplied; that is not
// an error and the returned Point is nil so callers can skip proximity
// filtering. Latitude must be within [-90, 90] and longitude within
// [-180, 180]; both must be finite.
func ParseCoordinates(input any) (*Point, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case []float64:
		if len(v) != 2 {
			return nil, fmt.Errorf("%w: expected array of [latitude, longitude], got %d elements", ErrInvalidCoordinate, len(v))
		}
		return validate(v[0], v[1])
	case [2]float64:
		return validate(v[0], v[1])
	case []any:
		return fromAnySlice(v)
	case string:
		return parseString(v)
	default:
		return nil, fmt.Errorf("%w: expected array of [latitude, longitude] or a string", ErrInvalidCoordinate)
	}
}

func parseString(s string) (*Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// "lat,lon" form takes precedence; split and parse both halves.
	if strings.Contains(s, ",") && !strings.HasPrefix(s, "[") {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: expected \"latitude,longitude\", got %d values", ErrInvalidCoordinate, len(parts))
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: expected \"latitude,longitude\" with numeric values", ErrInvalidCoordinate)
		}
		return validate(lat, lon)
	}
	// Fall back to a JSON array string like "[12.5,77.3]".
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, fmt.Errorf("%w: expected array of [latitude, longitude]", ErrInvalidCoordinate)
	}
	return fromAnySlice(arr)
}

func fromAnySlice(arr []any) (*Point, error) {
	if len(arr) != 2 {
		return nil, fmt.Errorf("%w: expected array of [latitude, longitude], got %d elements", ErrInvalidCoordinate, len(arr))
	}
	lat, ok1 := arr[0].(float64)
	lon, ok2 := arr[1].(float64)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: expected array of [latitude, longitude] with numeric elements", ErrInvalidCoordinate)
	}
	return validate(lat, lon)
}

func validate(lat, lon float64) (*Point, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return nil, fmt.Errorf("%w: latitude and longitude must be finite numbers", ErrInvalidCoordinate)
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude must be within [-90, 90], got %v", ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude must be within [-180, 180], got %v", ErrInvalidCoordinate, lon)
	}
	return &Point{Lat: lat, Lon: lon}, nil
}
