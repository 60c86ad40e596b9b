package domain

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCity = errors.New("offers: unsupported city")

// ConfigError is a fatal configuration problem such as missing credentials.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config: %s is required", e.Field)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// AuthError reports a rejected or failed token exchange.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("auth: token endpoint returned %d: %s", e.Status, e.Body)
	case e.Err != nil:
		return "auth: token exchange failed: " + e.Err.Error()
	default:
		return "auth: token exchange failed"
	}
}

func (e *AuthError) Unwrap() error { return e.Err }
