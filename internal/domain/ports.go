package domain

import (
	"context"
	"time"
)

type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Inventory is the upstream hotel provider. Every call is bearer-authenticated.
type Inventory interface {
	HotelIDsByCity(ctx context.Context, token, cityCode string) ([]string, error)
	HotelIDsByGeocode(ctx context.Context, token string, c Coordinate, radiusKM int) ([]string, error)
	Offers(ctx context.Context, token string, hotelIDs []string, q ResolutionQuery) ([]HotelOffer, error)
}

// PlaceSearch resolves free text to a coordinate.
type PlaceSearch interface {
	Search(ctx context.Context, text string) (lat, lon float64, err error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
