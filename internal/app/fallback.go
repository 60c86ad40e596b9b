package app

import (
	"sort"
	"strings"

	"hotel_offers/internal/domain"
)

type catalogCity struct {
	name   string
	offers []domain.HotelOffer
}

func link(s string) *string { return &s }

// fallbackCatalog is the hand-authored data served when no live tier answers.
var fallbackCatalog = map[string]catalogCity{
	"PAR": {name: "Paris", offers: []domain.HotelOffer{
		{
			Name:        "Hôtel Le Marais Lumière",
			Address:     "12 Rue des Archives, 75004 Paris, France",
			Price:       link("189.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Le+Marais+Paris"),
			ImageURL:    "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800",
			Description: "Boutique rooms a short walk from the Pompidou Centre and Place des Vosges.",
			Rating:      4.5,
		},
		{
			Name:        "Saint-Germain Garden Hotel",
			Address:     "45 Rue du Bac, 75007 Paris, France",
			Price:       link("245.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Saint-Germain+Paris"),
			ImageURL:    "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=800",
			Description: "Quiet courtyard hotel on the Left Bank near the Musée d'Orsay.",
			Rating:      4.3,
		},
		{
			Name:        "Montmartre Budget Stay",
			Address:     "8 Rue Lepic, 75018 Paris, France",
			Price:       link("98.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Montmartre+Paris"),
			ImageURL:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=800",
			Description: "Simple, clean rooms at the foot of Sacré-Cœur.",
			Rating:      3.8,
		},
	}},
	"NYC": {name: "New York", offers: []domain.HotelOffer{
		{
			Name:        "Midtown Skyline Hotel",
			Address:     "151 W 54th St, New York, NY 10019, USA",
			Price:       link("329.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Midtown+New+York"),
			ImageURL:    "https://images.unsplash.com/photo-1496417263034-38ec4f0b665a?w=800",
			Description: "High-floor rooms two blocks from Central Park and Broadway.",
			Rating:      4.4,
		},
		{
			Name:        "Brooklyn Loft Inn",
			Address:     "60 N 6th St, Brooklyn, NY 11249, USA",
			Price:       link("214.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Williamsburg+Brooklyn"),
			ImageURL:    "https://images.unsplash.com/photo-1566665797739-1674de7a421a?w=800",
			Description: "Converted warehouse lofts in Williamsburg with river views.",
			Rating:      4.2,
		},
	}},
	"LON": {name: "London", offers: []domain.HotelOffer{
		{
			Name:        "Covent Garden Townhouse",
			Address:     "10 Monmouth St, London WC2H 9HB, United Kingdom",
			Price:       link("265.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Covent+Garden+London"),
			ImageURL:    "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=800",
			Description: "Georgian townhouse steps from the theatres of the West End.",
			Rating:      4.6,
		},
		{
			Name:        "South Bank Riverside Hotel",
			Address:     "20 Upper Ground, London SE1 9PD, United Kingdom",
			Price:       link("178.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=South+Bank+London"),
			ImageURL:    "https://images.unsplash.com/photo-1571896349842-33c89424de2d?w=800",
			Description: "Thames-side rooms near the Tate Modern and Borough Market.",
			Rating:      4.1,
		},
	}},
	"ROM": {name: "Rome", offers: []domain.HotelOffer{
		{
			Name:        "Trastevere Terrace Rooms",
			Address:     "Via della Lungaretta 58, 00153 Roma, Italy",
			Price:       link("142.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Trastevere+Rome"),
			ImageURL:    "https://images.unsplash.com/photo-1552832230-c0197dd311b5?w=800",
			Description: "Family-run guesthouse with a rooftop terrace over Trastevere.",
			Rating:      4.4,
		},
	}},
	"BCN": {name: "Barcelona", offers: []domain.HotelOffer{
		{
			Name:        "Gothic Quarter Boutique",
			Address:     "Carrer de Ferran 31, 08002 Barcelona, Spain",
			Price:       link("156.00"),
			BookingLink: link("https://www.booking.com/searchresults.html?ss=Gothic+Quarter+Barcelona"),
			ImageURL:    "https://images.unsplash.com/photo-1583422409516-2895a77efded?w=800",
			Description: "Stone-walled rooms between La Rambla and the cathedral.",
			Rating:      4.2,
		},
	}},
}

// FallbackOffers returns a copy of the catalog entry for code.
// Unknown codes yield an empty, non-nil slice.
func FallbackOffers(code string) []domain.HotelOffer {
	c, ok := fallbackCatalog[strings.ToUpper(code)]
	if !ok {
		return []domain.HotelOffer{}
	}
	return domain.CopyOffers(c.offers)
}

// SupportedCities lists the catalog's cities ordered by code.
func SupportedCities() []domain.City {
	out := make([]domain.City, 0, len(fallbackCatalog))
	for code, c := range fallbackCatalog {
		out = append(out, domain.City{Code: code, Name: c.name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
