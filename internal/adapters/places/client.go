// Package places resolves free text to coordinates through a Places-style
// text search endpoint.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_offers/internal/adapters/observability"
)

var (
	ErrNoAPIKey  = errors.New("places: api key not configured")
	ErrNoResults = errors.New("places: no results")
)

type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		hc: &http.Client{
			Timeout:   10 * time.Second,
			Transport: observability.Transport("places", nil),
		},
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Search returns the first candidate's coordinate.
func (c *Client) Search(ctx context.Context, text string) (float64, float64, error) {
	if c.key == "" {
		return 0, 0, ErrNoAPIKey
	}
	if err := c.rl.Wait(ctx); err != nil {
		return 0, 0, err
	}
	v := url.Values{}
	v.Set("query", text)
	v.Set("key", c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/textsearch/json?"+v.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, 0, fmt.Errorf("places: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("places: decode: %w", err)
	}
	switch out.Status {
	case "OK":
	case "ZERO_RESULTS":
		return 0, 0, ErrNoResults
	default:
		return 0, 0, fmt.Errorf("places: status %s: %s", out.Status, out.ErrorMessage)
	}
	if len(out.Results) == 0 {
		return 0, 0, ErrNoResults
	}
	loc := out.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
