package places_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_offers/internal/adapters/places"
)

func TestSearch_FirstResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "BCN", r.URL.Query().Get("query"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"geometry":{"location":{"lat":41.3874,"lng":2.1686}}},
			{"geometry":{"location":{"lat":1,"lng":1}}}]}`))
	}))
	defer ts.Close()

	lat, lon, err := places.New(ts.URL, "k", 100).Search(context.Background(), "BCN")
	require.NoError(t, err)
	assert.Equal(t, 41.3874, lat)
	assert.Equal(t, 2.1686, lon)
}

func TestSearch_ZeroResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer ts.Close()

	_, _, err := places.New(ts.URL, "k", 100).Search(context.Background(), "ZZZ")
	assert.True(t, errors.Is(err, places.ErrNoResults))
}

func TestSearch_GarbageBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer ts.Close()

	_, _, err := places.New(ts.URL, "k", 100).Search(context.Background(), "PAR")
	assert.Error(t, err)
}

func TestSearch_NoKeyMakesNoCall(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	_, _, err := places.New(ts.URL, "", 100).Search(context.Background(), "PAR")
	assert.True(t, errors.Is(err, places.ErrNoAPIKey))
	assert.Zero(t, atomic.LoadInt32(&hits))
}
