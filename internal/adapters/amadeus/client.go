// internal/adapters/amadeus/client.go
package amadeus

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_offers/internal/adapters/observability"
	"hotel_offers/internal/domain"
)

type Client struct {
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	retries int
}

func New(base string, rps, retries int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("amadeus base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if retries < 0 {
		retries = 0
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc: &http.Client{
			Timeout:   20 * time.Second,
			Transport: observability.Transport("amadeus", nil),
		},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		retries: retries,
	}, nil
}

// ---- Public API ----

func (c *Client) HotelIDsByCity(ctx context.Context, token, cityCode string) ([]string, error) {
	v := url.Values{}
	v.Set("cityCode", cityCode)
	var out hotelListResponse
	if err := c.get(ctx, token, c.base+"/v1/reference-data/locations/hotels/by-city?"+v.Encode(), &out); err != nil {
		return nil, err
	}
	return out.ids(), nil
}

func (c *Client) HotelIDsByGeocode(ctx context.Context, token string, co domain.Coordinate, radiusKM int) ([]string, error) {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(co.Latitude, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(co.Longitude, 'f', -1, 64))
	v.Set("radius", strconv.Itoa(radiusKM))
	v.Set("radiusUnit", "KM")
	var out hotelListResponse
	if err := c.get(ctx, token, c.base+"/v1/reference-data/locations/hotels/by-geocode?"+v.Encode(), &out); err != nil {
		return nil, err
	}
	return out.ids(), nil
}

// Offers prices the given hotels; callers bound the list.
func (c *Client) Offers(ctx context.Context, token string, hotelIDs []string, q domain.ResolutionQuery) ([]domain.HotelOffer, error) {
	if len(hotelIDs) == 0 {
		return nil, nil
	}
	v := url.Values{}
	v.Set("hotelIds", strings.Join(hotelIDs, ","))
	v.Set("checkInDate", q.CheckIn)
	v.Set("checkOutDate", q.CheckOut)
	v.Set("adults", strconv.Itoa(q.Adults))
	var out offersResponse
	if err := c.get(ctx, token, c.base+"/v3/shopping/hotel-offers?"+v.Encode(), &out); err != nil {
		return nil, err
	}
	return mapOffers(out), nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("amadeus: not found")
	ErrUnauthorized = errors.New("amadeus: unauthorized")
	ErrForbidden    = errors.New("amadeus: forbidden")
)

// get performs a bearer-authenticated GET with client-side rate limiting,
// retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, token, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i <= c.retries; i++ {
		last := i == c.retries
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")
		req.Header.Set("User-Agent", "hotel-offers/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if !last && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("amadeus: remote %d", resp.StatusCode)
			if !last && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("amadeus: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay (200ms, 400ms, 800ms...)
// with up to +50% jitter from crypto/rand.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
