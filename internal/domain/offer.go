package domain

import "fmt"

// Source tags which tier of the cascade produced a result.
type Source string

const (
	SourceAmadeus        Source = "amadeus"
	SourceGeocode        Source = "geocode"
	SourceGeocodeDynamic Source = "geocode-dynamic"
	SourceMock           Source = "mock"
)

// Live reports whether the result came from the upstream provider.
func (s Source) Live() bool {
	return s == SourceAmadeus || s == SourceGeocode || s == SourceGeocodeDynamic
}

type ResolutionQuery struct {
	CityCode string
	CheckIn  string // YYYY-MM-DD
	CheckOut string // YYYY-MM-DD
	Adults   int
}

// CacheKey is the identity of a query; equal tuples share one entry.
func (q ResolutionQuery) CacheKey() string {
	return fmt.Sprintf("offers:%s:%s:%s:%d", q.CityCode, q.CheckIn, q.CheckOut, q.Adults)
}

type HotelOffer struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Price       *string `json:"price"`
	BookingLink *string `json:"bookingLink"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

type ResolutionResult struct {
	Offers []HotelOffer `json:"offers"`
	Source Source       `json:"source"`
}

type Coordinate struct {
	CityCode  string
	Latitude  float64
	Longitude float64
	Dynamic   bool // resolved through place search rather than the static table
}

type City struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CopyOffers returns a copy whose pointer fields do not alias the input.
func CopyOffers(in []HotelOffer) []HotelOffer {
	out := make([]HotelOffer, len(in))
	for i, o := range in {
		out[i] = o
		if o.Price != nil {
			p := *o.Price
			out[i].Price = &p
		}
		if o.BookingLink != nil {
			l := *o.BookingLink
			out[i].BookingLink = &l
		}
	}
	return out
}
