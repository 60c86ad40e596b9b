package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel_offers/internal/app"
)

func TestCoordinateResolver_StaticTable(t *testing.T) {
	s := &fakeSearch{lat: 1, lon: 1}
	c := app.NewCoordinateResolver(s)

	co, ok := c.Resolve(context.Background(), "nyc")
	assert.True(t, ok)
	assert.Equal(t, "NYC", co.CityCode)
	assert.False(t, co.Dynamic)
	assert.Zero(t, s.calls)
	assert.True(t, c.Known("LON"))
	assert.False(t, c.Known("BCN"))
}

func TestCoordinateResolver_Dynamic(t *testing.T) {
	s := &fakeSearch{lat: 41.9028, lon: 12.4964}
	co, ok := app.NewCoordinateResolver(s).Resolve(context.Background(), "ROM")
	assert.True(t, ok)
	assert.True(t, co.Dynamic)
	assert.Equal(t, 41.9028, co.Latitude)
	assert.Equal(t, 1, s.calls)
}

func TestCoordinateResolver_FailuresAreMisses(t *testing.T) {
	cases := map[string]*fakeSearch{
		"search error": {err: errors.New("boom")},
		"out of range": {lat: 123, lon: 0},
		"not a number": {lat: math.NaN(), lon: 0},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := app.NewCoordinateResolver(s).Resolve(context.Background(), "XYZ")
			assert.False(t, ok)
		})
	}

	_, ok := app.NewCoordinateResolver(nil).Resolve(context.Background(), "XYZ")
	assert.False(t, ok, "nil search disables dynamic lookups")
}
