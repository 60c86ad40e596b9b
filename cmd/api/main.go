package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_offers/internal/adapters/amadeus"
	server "hotel_offers/internal/adapters/http_server"
	"hotel_offers/internal/adapters/memcache"
	"hotel_offers/internal/adapters/observability"
	"hotel_offers/internal/adapters/places"
	"hotel_offers/internal/adapters/ratelimit"
	redisad "hotel_offers/internal/adapters/redis"
	"hotel_offers/internal/app"
	"hotel_offers/internal/domain"
	"hotel_offers/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	cache := openCache(ctx, cfg)

	inv, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusRPS, cfg.AmadeusRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus client")
	}
	tokens := amadeus.NewTokenProvider(cfg.AmadeusTokenURL, cfg.AmadeusID, cfg.AmadeusSecret)
	geo := app.NewCoordinateResolver(places.New(cfg.PlacesBase, cfg.PlacesKey, 5))

	resolver := app.NewResolver(app.Deps{
		Tokens:      tokens,
		Inventory:   inv,
		Coordinates: geo,
		Cache:       cache,
		CacheTTL:    app.OfferTTL,
		UseMockData: cfg.UseMockData,
		Verbose:     cfg.Development(),
	})

	trusted, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimitEnabled() {
		limiter = ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
		defer limiter.Stop()
	}

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: resolver, Limiter: limiter, TrustedProxies: trusted})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Bool("mock", cfg.UseMockData).
			Bool("rate_limiting", limiter != nil).
			Str("cache", cfg.CacheBackend).
			Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openCache(ctx context.Context, cfg shared.Config) domain.Cache {
	if cfg.CacheBackend != "redis" {
		return memcache.New(time.Minute)
	}
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
	return rc
}
