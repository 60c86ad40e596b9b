package amadeus

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"hotel_offers/internal/domain"
)

// DefaultImageURL is used when the provider returns no media for a hotel.
const DefaultImageURL = "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800"

/********** wire shapes **********/

type hotelListResponse struct {
	Data []struct {
		HotelID  string `json:"hotelId"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
	} `json:"data"`
}

func (r hotelListResponse) ids() []string {
	out := make([]string, 0, len(r.Data))
	for _, h := range r.Data {
		if h.HotelID != "" {
			out = append(out, h.HotelID)
		}
	}
	return out
}

type offersResponse struct {
	Data []hotelOffers `json:"data"`
}

type hotelOffers struct {
	Available bool `json:"available"`
	Hotel     struct {
		HotelID  string    `json:"hotelId"`
		Name     string    `json:"name"`
		CityCode string    `json:"cityCode"`
		Rating   flexFloat `json:"rating"`
		Address  struct {
			Lines       []string `json:"lines"`
			PostalCode  string   `json:"postalCode"`
			CityName    string   `json:"cityName"`
			CountryCode string   `json:"countryCode"`
		} `json:"address"`
		Media []struct {
			URI string `json:"uri"`
		} `json:"media"`
	} `json:"hotel"`
	Offers []struct {
		ID    string `json:"id"`
		Self  string `json:"self"`
		Price struct {
			Currency string `json:"currency"`
			Total    string `json:"total"`
		} `json:"price"`
		Room struct {
			Description struct {
				Text string `json:"text"`
			} `json:"description"`
		} `json:"room"`
		Description struct {
			Text string `json:"text"`
		} `json:"description"`
	} `json:"offers"`
}

/********** mapping **********/

// mapOffers keeps one offer per hotel, the first one the provider lists.
// Hotels without offers are dropped.
func mapOffers(r offersResponse) []domain.HotelOffer {
	out := make([]domain.HotelOffer, 0, len(r.Data))
	for _, h := range r.Data {
		if len(h.Offers) == 0 {
			continue
		}
		o := h.Offers[0]

		addr := joinNonEmpty(", ", append(append([]string{}, h.Hotel.Address.Lines...),
			h.Hotel.Address.PostalCode, h.Hotel.Address.CityName, h.Hotel.Address.CountryCode)...)
		if addr == "" {
			addr = h.Hotel.CityCode
		}
		img := DefaultImageURL
		if len(h.Hotel.Media) > 0 && h.Hotel.Media[0].URI != "" {
			img = h.Hotel.Media[0].URI
		}
		desc := o.Room.Description.Text
		if desc == "" {
			desc = o.Description.Text
		}

		out = append(out, domain.HotelOffer{
			Name:        strings.TrimSpace(h.Hotel.Name),
			Address:     addr,
			Price:       ptrStr(strings.TrimSpace(o.Price.Total)),
			BookingLink: ptrStr(o.Self),
			ImageURL:    img,
			Description: strings.TrimSpace(desc),
			Rating:      clampRating(float64(h.Hotel.Rating)),
		})
	}
	return out
}

/********** tiny helpers **********/

// flexFloat accepts 4, 4.5, "4" or "4,5". "NaN" and "Inf" read as unknown.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// unparseable ratings are treated as unknown, not as a decode failure
		return nil
	}
	*f = flexFloat(v)
	return nil
}

func clampRating(r float64) float64 {
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 5:
		return 5
	}
	return r
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}
