package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"hotel_offers/internal/adapters/observability"
	"hotel_offers/internal/domain"
)

const (
	MaxHotelIDs     = 20
	GeocodeRadiusKM = 10
)

var (
	errNoHotels     = errors.New("no hotels listed")
	errNoOffers     = errors.New("no offers returned")
	errNoCoordinate = errors.New("no coordinate for city")
)

// lookup is one way of listing hotel ids; byCity and byGeocode are the only
// variants, and both feed the same offers step.
type lookup interface {
	tier() string
	source() domain.Source
	hotelIDs(ctx context.Context, inv domain.Inventory, token string) ([]string, error)
}

type byCity struct{ code string }

func (byCity) tier() string          { return "by-city" }
func (byCity) source() domain.Source { return domain.SourceAmadeus }
func (l byCity) hotelIDs(ctx context.Context, inv domain.Inventory, token string) ([]string, error) {
	return inv.HotelIDsByCity(ctx, token, l.code)
}

type byGeocode struct{ coord domain.Coordinate }

func (byGeocode) tier() string { return "by-geocode" }
func (l byGeocode) source() domain.Source {
	if l.coord.Dynamic {
		return domain.SourceGeocodeDynamic
	}
	return domain.SourceGeocode
}
func (l byGeocode) hotelIDs(ctx context.Context, inv domain.Inventory, token string) ([]string, error) {
	return inv.HotelIDsByGeocode(ctx, token, l.coord, GeocodeRadiusKM)
}

// cascade runs ByCity, ByGeocode and Fallback in order. It always returns a
// result; live tier failures only move it to the next tier.
func (r *Resolver) cascade(ctx context.Context, token string, q domain.ResolutionQuery) domain.ResolutionResult {
	if res, ok := r.tryTier(ctx, token, byCity{code: q.CityCode}, q); ok {
		return res
	}

	if co, ok := r.coords.Resolve(ctx, q.CityCode); ok {
		if res, ok := r.tryTier(ctx, token, byGeocode{coord: co}, q); ok {
			return res
		}
	} else {
		r.miss(byGeocode{}.tier(), q, errNoCoordinate)
	}

	return domain.ResolutionResult{Offers: FallbackOffers(q.CityCode), Source: domain.SourceMock}
}

func (r *Resolver) tryTier(ctx context.Context, token string, l lookup, q domain.ResolutionQuery) (domain.ResolutionResult, bool) {
	ctx, span := tracer.Start(ctx, "tier."+l.tier())
	defer span.End()

	offers, err := r.fetchOffers(ctx, token, l, q)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.miss(l.tier(), q, err)
		return domain.ResolutionResult{}, false
	}
	span.SetAttributes(attribute.Int("offers.count", len(offers)))
	return domain.ResolutionResult{Offers: offers, Source: l.source()}, true
}

// fetchOffers lists hotel ids, then prices up to MaxHotelIDs of them.
// An empty list at either step counts as a failure.
func (r *Resolver) fetchOffers(ctx context.Context, token string, l lookup, q domain.ResolutionQuery) ([]domain.HotelOffer, error) {
	ids, err := l.hotelIDs(ctx, r.inv, token)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	if len(ids) == 0 {
		return nil, errNoHotels
	}
	if len(ids) > MaxHotelIDs {
		ids = ids[:MaxHotelIDs]
	}
	offers, err := r.inv.Offers(ctx, token, ids, q)
	if err != nil {
		return nil, fmt.Errorf("fetch offers: %w", err)
	}
	if len(offers) == 0 {
		return nil, errNoOffers
	}
	return offers, nil
}

func (r *Resolver) miss(tier string, q domain.ResolutionQuery, err error) {
	observability.ObserveTierMiss(tier)
	if r.verbose {
		log.Warn().Err(err).
			Str("tier", tier).
			Str("city", q.CityCode).
			Str("check_in", q.CheckIn).
			Str("check_out", q.CheckOut).
			Int("adults", q.Adults).
			Msg("tier produced no offers, falling through")
		return
	}
	log.Debug().Str("tier", tier).Str("city", q.CityCode).Msg("tier miss")
}
