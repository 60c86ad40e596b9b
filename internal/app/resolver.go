package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel_offers/internal/adapters/observability"
	"hotel_offers/internal/domain"
)

// OfferTTL is the freshness window of every cached result.
const OfferTTL = 10 * time.Minute

var tracer = otel.Tracer("hotel_offers/app")

type Deps struct {
	Tokens      domain.TokenSource
	Inventory   domain.Inventory
	Coordinates *CoordinateResolver
	Cache       domain.Cache
	CacheTTL    time.Duration
	UseMockData bool
	Verbose     bool // log every tier fallthrough with its cause
}

// Resolver answers offer queries: cache, then the provider cascade.
type Resolver struct {
	tokens   domain.TokenSource
	inv      domain.Inventory
	coords   *CoordinateResolver
	cache    domain.Cache
	cacheTTL time.Duration
	mock     bool
	verbose  bool
}

func NewResolver(d Deps) *Resolver {
	if d.CacheTTL <= 0 {
		d.CacheTTL = OfferTTL
	}
	if d.Coordinates == nil {
		d.Coordinates = NewCoordinateResolver(nil)
	}
	return &Resolver{
		tokens:   d.Tokens,
		inv:      d.Inventory,
		coords:   d.Coordinates,
		cache:    d.Cache,
		cacheTTL: d.CacheTTL,
		mock:     d.UseMockData,
		verbose:  d.Verbose,
	}
}

// Resolve returns offers for q. Errors are limited to configuration and
// token failures and domain.ErrUnsupportedCity.
//
// Concurrent misses on the same key are not coalesced: each runs the full
// cascade and the last writer wins.
func (r *Resolver) Resolve(ctx context.Context, q domain.ResolutionQuery) (domain.ResolutionResult, error) {
	q.CityCode = strings.ToUpper(strings.TrimSpace(q.CityCode))
	ctx, span := tracer.Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("city", q.CityCode),
		attribute.String("check_in", q.CheckIn),
		attribute.String("check_out", q.CheckOut),
		attribute.Int("adults", q.Adults),
	))
	defer span.End()

	if r.mock {
		return r.finish(span, q, domain.ResolutionResult{Offers: FallbackOffers(q.CityCode), Source: domain.SourceMock})
	}

	key := q.CacheKey()
	var cached domain.ResolutionResult
	if ok, err := r.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return r.finish(span, q, cached)
	}

	token, err := r.tokens.AccessToken(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token acquisition failed")
		return domain.ResolutionResult{}, fmt.Errorf("acquire token: %w", err)
	}

	res := r.cascade(ctx, token, q)
	if res.Source.Live() {
		if err := r.cache.Set(ctx, key, res, r.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return r.finish(span, q, res)
}

func (r *Resolver) finish(span trace.Span, q domain.ResolutionQuery, res domain.ResolutionResult) (domain.ResolutionResult, error) {
	if len(res.Offers) == 0 && !r.coords.Known(q.CityCode) {
		span.SetStatus(codes.Error, "unsupported city")
		return res, fmt.Errorf("%w: %s", domain.ErrUnsupportedCity, q.CityCode)
	}
	observability.ObserveResolution(string(res.Source))
	span.SetAttributes(
		attribute.String("source", string(res.Source)),
		attribute.Int("offers.count", len(res.Offers)),
	)
	span.SetStatus(codes.Ok, "")
	return res, nil
}
