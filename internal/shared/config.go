package shared

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hotel_offers/internal/domain"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	AmadeusBase     string
	AmadeusTokenURL string
	AmadeusID       string
	AmadeusSecret   string
	AmadeusRPS      int
	AmadeusRetries  int

	PlacesBase string
	PlacesKey  string

	UseMockData     bool
	RateLimiting    string // enabled|disabled
	RateLimitMax    int
	RateLimitWindow time.Duration

	CacheBackend string // memory|redis
	RedisAddr    string
	RedisDB      int
	RedisPass    string

	CORSOrigins []string

	// TrustedProxies lists peers (IPs or CIDRs) whose X-Forwarded-For is
	// believed when keying the rate limiter. Empty means the socket peer.
	TrustedProxies []string

	WarmWorkers  int
	WarmCheckIn  string
	WarmCheckOut string
	WarmAdults   int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		AmadeusBase:     env("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusTokenURL: env("AMADEUS_TOKEN_URL", "https://test.api.amadeus.com/v1/security/oauth2/token"),
		AmadeusID:       env("AMADEUS_CLIENT_ID", ""),
		AmadeusSecret:   env("AMADEUS_CLIENT_SECRET", ""),
		AmadeusRPS:      atoi("AMADEUS_RPS", 10),
		AmadeusRetries:  atoi("AMADEUS_RETRIES", 2),

		PlacesBase: env("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesKey:  env("PLACES_API_KEY", ""),

		UseMockData:     boolEnv("USE_MOCK_DATA", false),
		RateLimiting:    strings.ToLower(env("RATE_LIMITING", "enabled")),
		RateLimitMax:    atoi("RATE_LIMIT_MAX", 30),
		RateLimitWindow: time.Duration(atoi("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		CacheBackend: strings.ToLower(env("CACHE_BACKEND", "memory")),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),

		CORSOrigins:    splitList(env("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		TrustedProxies: splitList(env("TRUSTED_PROXIES", "")),

		WarmWorkers:  atoi("WARM_WORKERS", 4),
		WarmCheckIn:  env("WARM_CHECK_IN", time.Now().AddDate(0, 0, 30).Format(time.DateOnly)),
		WarmCheckOut: env("WARM_CHECK_OUT", time.Now().AddDate(0, 0, 32).Format(time.DateOnly)),
		WarmAdults:   atoi("WARM_ADULTS", 2),
	}
	if !c.UseMockData && (c.AmadeusID == "" || c.AmadeusSecret == "") {
		log.Warn().Msg("AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET is empty")
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("PLACES_API_KEY is empty; dynamic geocoding disabled")
	}
	return c
}

// Validate reports settings that make the process unable to serve.
func (c Config) Validate() error {
	if !c.UseMockData {
		if c.AmadeusID == "" {
			return &domain.ConfigError{Field: "AMADEUS_CLIENT_ID"}
		}
		if c.AmadeusSecret == "" {
			return &domain.ConfigError{Field: "AMADEUS_CLIENT_SECRET"}
		}
	}
	switch c.RateLimiting {
	case "enabled", "disabled":
	default:
		return &domain.ConfigError{Field: "RATE_LIMITING", Reason: "must be enabled or disabled, got " + c.RateLimiting}
	}
	switch c.CacheBackend {
	case "memory", "redis":
	default:
		return &domain.ConfigError{Field: "CACHE_BACKEND", Reason: "must be memory or redis, got " + c.CacheBackend}
	}
	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		return &domain.ConfigError{Field: "RATE_LIMIT_MAX", Reason: "limit and window must be positive"}
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES; a bare IP becomes a single-host prefix.
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, s := range c.TrustedProxies {
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, &domain.ConfigError{Field: "TRUSTED_PROXIES", Reason: err.Error()}
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(s)
		if err != nil {
			return nil, &domain.ConfigError{Field: "TRUSTED_PROXIES", Reason: err.Error()}
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func (c Config) Development() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }

func (c Config) RateLimitEnabled() bool { return c.RateLimiting == "enabled" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
