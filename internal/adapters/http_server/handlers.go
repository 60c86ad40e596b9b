// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_offers/internal/adapters/ratelimit"
	"hotel_offers/internal/app"
	"hotel_offers/internal/domain"
)

type OfferResolver interface {
	Resolve(ctx context.Context, q domain.ResolutionQuery) (domain.ResolutionResult, error)
}

type Handlers struct {
	R       OfferResolver
	Limiter *ratelimit.Limiter // nil when rate limiting is disabled
	// TrustedProxies may set X-Forwarded-For for the limiter key.
	TrustedProxies []netip.Prefix
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type citiesBody struct {
	Cities []domain.City `json:"cities"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		if h.Limiter != nil {
			r.Use(RateLimit(h.Limiter, h.TrustedProxies))
		}
		r.Get("/offers", h.getOffers)
		r.Get("/cities", h.listCities)
	})
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: msg, Details: details}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeError(w, http.StatusInternalServerError, "internal error", "response encoding failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// parseQuery validates the /offers parameters; the message is client-facing.
func parseQuery(r *http.Request) (domain.ResolutionQuery, string, bool) {
	v := r.URL.Query()
	var missing []string
	get := func(k string) string {
		s := strings.TrimSpace(v.Get(k))
		if s == "" {
			missing = append(missing, k)
		}
		return s
	}
	q := domain.ResolutionQuery{
		CityCode: strings.ToUpper(get("cityCode")),
		CheckIn:  get("checkIn"),
		CheckOut: get("checkOut"),
	}
	adults := get("adults")
	if len(missing) > 0 {
		return q, "missing query parameters: " + strings.Join(missing, ", "), false
	}

	n, err := strconv.Atoi(adults)
	if err != nil || n < 1 {
		return q, "adults must be a positive integer", false
	}
	q.Adults = n

	in, err := time.Parse(time.DateOnly, q.CheckIn)
	if err != nil {
		return q, "checkIn must be an ISO date (YYYY-MM-DD)", false
	}
	out, err := time.Parse(time.DateOnly, q.CheckOut)
	if err != nil {
		return q, "checkOut must be an ISO date (YYYY-MM-DD)", false
	}
	if !out.After(in) {
		return q, "checkOut must be after checkIn", false
	}
	return q, "", true
}

func (h *Handlers) getOffers(w http.ResponseWriter, r *http.Request) {
	q, msg, ok := parseQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request", msg)
		return
	}

	res, err := h.R.Resolve(r.Context(), q)
	switch {
	case errors.Is(err, domain.ErrUnsupportedCity):
		writeError(w, http.StatusNotFound, "unsupported city", "no hotel data for city code "+q.CityCode)
		return
	case err != nil:
		log.Error().Err(err).Str("city", q.CityCode).Msg("resolve offers failed")
		writeError(w, http.StatusInternalServerError, "failed to fetch hotel offers", err.Error())
		return
	}
	writeJSON(w, r, res)
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, citiesBody{Cities: app.SupportedCities()})
}
