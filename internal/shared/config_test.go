package shared_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_offers/internal/domain"
	"hotel_offers/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")

	c := shared.Load()
	assert.Equal(t, "enabled", c.RateLimiting)
	assert.Equal(t, 30, c.RateLimitMax)
	assert.Equal(t, time.Minute, c.RateLimitWindow)
	assert.Equal(t, "memory", c.CacheBackend)
	assert.False(t, c.UseMockData)
	assert.Empty(t, c.TrustedProxies)
	require.NoError(t, c.Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")
	t.Setenv("USE_MOCK_DATA", "false")

	err := shared.Load().Validate()
	var ce *domain.ConfigError
	require.True(t, errors.As(err, &ce), "expected ConfigError, got %v", err)
	assert.Equal(t, "AMADEUS_CLIENT_ID", ce.Field)
}

func TestValidate_MockModeNeedsNoCredentials(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "")
	t.Setenv("USE_MOCK_DATA", "true")

	require.NoError(t, shared.Load().Validate())
}

func TestValidate_RateLimitingEnum(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("RATE_LIMITING", "sometimes")

	err := shared.Load().Validate()
	var ce *domain.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "RATE_LIMITING", ce.Field)
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.7")

	c := shared.Load()
	require.NoError(t, c.Validate())
	ps, err := c.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "10.0.0.0/8", ps[0].String())
	assert.Equal(t, "192.168.1.7/32", ps[1].String())
}

func TestValidate_BadTrustedProxy(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("TRUSTED_PROXIES", "not-an-ip")

	err := shared.Load().Validate()
	var ce *domain.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "TRUSTED_PROXIES", ce.Field)
}
