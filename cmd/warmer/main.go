package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_offers/internal/adapters/amadeus"
	"hotel_offers/internal/adapters/memcache"
	"hotel_offers/internal/adapters/observability"
	"hotel_offers/internal/adapters/places"
	redisad "hotel_offers/internal/adapters/redis"
	"hotel_offers/internal/app"
	"hotel_offers/internal/domain"
	"hotel_offers/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.UseMockData {
		log.Fatal().Msg("USE_MOCK_DATA is set; mock results are never cached, nothing to warm")
	}

	log.Info().
		Str("base", cfg.AmadeusBase).
		Int("workers", cfg.WarmWorkers).
		Str("check_in", cfg.WarmCheckIn).
		Str("check_out", cfg.WarmCheckOut).
		Int("adults", cfg.WarmAdults).
		Msg("warmer starting")

	var cache domain.Cache
	if cfg.CacheBackend == "redis" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		log.Info().Msg("redis ping ok")
		cache = rc
	} else {
		log.Warn().Msg("CACHE_BACKEND=memory; warmed entries die with this process")
		cache = memcache.New(time.Minute)
	}

	inv, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusRPS, cfg.AmadeusRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus client")
	}

	r := app.NewResolver(app.Deps{
		Tokens:      amadeus.NewTokenProvider(cfg.AmadeusTokenURL, cfg.AmadeusID, cfg.AmadeusSecret),
		Inventory:   inv,
		Coordinates: app.NewCoordinateResolver(places.New(cfg.PlacesBase, cfg.PlacesKey, 5)),
		Cache:       cache,
		Verbose:     cfg.Development(),
	})

	queries := app.QueriesFor(cfg.WarmCheckIn, cfg.WarmCheckOut, cfg.WarmAdults)
	rep := app.NewWarmer(r, cfg.WarmWorkers).Warm(ctx, queries)

	log.Info().
		Str("run_id", rep.RunID).
		Int("live", rep.Live).
		Int("fallback", rep.Fallback).
		Int("failed", rep.Failed).
		Msg("warm completed")
}
