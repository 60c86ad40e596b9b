package amadeus

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"hotel_offers/internal/adapters/observability"
	"hotel_offers/internal/domain"
)

// TokenProvider exchanges the client credential pair for a bearer token and
// reuses it until shortly before it expires. A refresh runs on the caller's
// context, so it is cancelled with the request that triggered it.
type TokenProvider struct {
	cfg clientcredentials.Config
	hc  *http.Client

	mu  sync.Mutex
	tok *oauth2.Token
}

func NewTokenProvider(tokenURL, clientID, clientSecret string) *TokenProvider {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	hc := &http.Client{
		Timeout:   15 * time.Second,
		Transport: observability.Transport("amadeus-auth", nil),
	}
	return &TokenProvider{cfg: cfg, hc: hc}
}

func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.cfg.ClientID == "" {
		return "", &domain.ConfigError{Field: "AMADEUS_CLIENT_ID"}
	}
	if p.cfg.ClientSecret == "" {
		return "", &domain.ConfigError{Field: "AMADEUS_CLIENT_SECRET"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tok.Valid() {
		return p.tok.AccessToken, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tok, err := p.cfg.Token(context.WithValue(ctx, oauth2.HTTPClient, p.hc))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", toAuthError(err)
	}
	p.tok = tok
	return tok.AccessToken, nil
}

func toAuthError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return &domain.AuthError{
			Status: re.Response.StatusCode,
			Body:   strings.TrimSpace(string(re.Body)),
			Err:    err,
		}
	}
	return &domain.AuthError{Err: err}
}
