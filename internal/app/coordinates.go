package app

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_offers/internal/domain"
)

var knownCoordinates = map[string]domain.Coordinate{
	"PAR": {CityCode: "PAR", Latitude: 48.8566, Longitude: 2.3522},
	"NYC": {CityCode: "NYC", Latitude: 40.7128, Longitude: -74.0060},
	"LON": {CityCode: "LON", Latitude: 51.5074, Longitude: -0.1278},
}

// CoordinateResolver maps a city code to a coordinate: static table first,
// then a single place search. Dynamic answers are not cached.
type CoordinateResolver struct {
	search domain.PlaceSearch // nil disables dynamic lookups
}

func NewCoordinateResolver(s domain.PlaceSearch) *CoordinateResolver {
	return &CoordinateResolver{search: s}
}

// Known reports whether the code is in the static table.
func (c *CoordinateResolver) Known(code string) bool {
	_, ok := knownCoordinates[strings.ToUpper(code)]
	return ok
}

// Resolve never fails loudly; a false return is an ordinary tier miss.
func (c *CoordinateResolver) Resolve(ctx context.Context, code string) (domain.Coordinate, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if co, ok := knownCoordinates[code]; ok {
		return co, true
	}
	if c.search == nil || code == "" {
		return domain.Coordinate{}, false
	}
	lat, lon, err := c.search.Search(ctx, code)
	if err != nil {
		log.Debug().Err(err).Str("city", code).Msg("place search failed")
		return domain.Coordinate{}, false
	}
	if !validCoordinate(lat, lon) {
		log.Debug().Float64("lat", lat).Float64("lon", lon).Str("city", code).Msg("place search returned an invalid coordinate")
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{CityCode: code, Latitude: lat, Longitude: lon, Dynamic: true}, true
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
