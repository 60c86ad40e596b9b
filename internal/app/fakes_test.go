package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"hotel_offers/internal/domain"
)

// ---- fakes ----

type fakeTokens struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeTokens) AccessToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "tok", nil
}

func (f *fakeTokens) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeInventory struct {
	mu sync.Mutex

	byCity    func(code string) ([]string, error)
	byGeocode func(c domain.Coordinate, radius int) ([]string, error)
	offers    func(ids []string) ([]domain.HotelOffer, error)

	cityCalls, geoCalls, offerCalls int
	lastGeo                         domain.Coordinate
	lastRadius                      int
	lastIDs                         []string
}

func (f *fakeInventory) HotelIDsByCity(ctx context.Context, token, code string) ([]string, error) {
	f.mu.Lock()
	f.cityCalls++
	fn := f.byCity
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("by-city unavailable")
	}
	return fn(code)
}

func (f *fakeInventory) HotelIDsByGeocode(ctx context.Context, token string, c domain.Coordinate, radius int) ([]string, error) {
	f.mu.Lock()
	f.geoCalls++
	f.lastGeo, f.lastRadius = c, radius
	fn := f.byGeocode
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("by-geocode unavailable")
	}
	return fn(c, radius)
}

func (f *fakeInventory) Offers(ctx context.Context, token string, ids []string, q domain.ResolutionQuery) ([]domain.HotelOffer, error) {
	f.mu.Lock()
	f.offerCalls++
	f.lastIDs = append([]string(nil), ids...)
	fn := f.offers
	f.mu.Unlock()
	if fn == nil {
		return offersFor(ids), nil
	}
	return fn(ids)
}

func (f *fakeInventory) counts() (city, geo, offers int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cityCalls, f.geoCalls, f.offerCalls
}

type fakeSearch struct {
	mu       sync.Mutex
	calls    int
	lat, lon float64
	err      error
}

func (f *fakeSearch) Search(ctx context.Context, text string) (float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.lat, f.lon, f.err
}

// fakeCache keeps JSON bytes and honors TTL against an adjustable clock.
type fakeCache struct {
	mu     sync.Mutex
	now    time.Time
	store  map[string]fakeEntry
	gets   int
	sets   int
	getErr error
}

type fakeEntry struct {
	b         []byte
	expiresAt time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), store: map[string]fakeEntry{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	e, ok := c.store[key]
	if !ok || !c.now.Before(e.expiresAt) {
		return false, nil
	}
	return true, json.Unmarshal(e.b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = fakeEntry{b: b, expiresAt: c.now.Add(ttl)}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeCache) counts() (gets, sets int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.sets
}

// ---- helpers ----

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "H" + strconv.Itoa(i+1)
	}
	return out
}

func idsFn(n int) func(string) ([]string, error) {
	return func(string) ([]string, error) { return ids(n), nil }
}

func offersFor(ids []string) []domain.HotelOffer {
	out := make([]domain.HotelOffer, 0, len(ids))
	for _, id := range ids {
		p := "100.00"
		out = append(out, domain.HotelOffer{Name: "Hotel " + id, Address: id + " Street", Price: &p, Rating: 4})
	}
	return out
}
