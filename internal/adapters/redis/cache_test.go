package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hotel_offers/internal/adapters/redis"
	"hotel_offers/internal/domain"
)

func TestCache_MiniRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	var out domain.ResolutionResult
	ok, err := c.Get(ctx, "offers:PAR:2025-06-01:2025-06-03:2", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	in := domain.ResolutionResult{Source: domain.SourceAmadeus, Offers: []domain.HotelOffer{{Name: "A"}}}
	require.NoError(t, c.Set(ctx, "offers:PAR:2025-06-01:2025-06-03:2", in, 10*time.Minute))
	assert.Equal(t, 10*time.Minute, mr.TTL("offers:PAR:2025-06-01:2025-06-03:2"))

	ok, err = c.Get(ctx, "offers:PAR:2025-06-01:2025-06-03:2", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	// expiry is enforced by redis itself
	mr.FastForward(11 * time.Minute)
	ok, err = c.Get(ctx, "offers:PAR:2025-06-01:2025-06-03:2", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", domain.ResolutionResult{Source: domain.SourceGeocode}, time.Minute))
	require.NoError(t, c.Del(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}
