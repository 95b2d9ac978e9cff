// Package session persists the bearer token issued at login.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// TokenKey is the name the token is stored under
	TokenKey = "jwt_token"
	// DefaultTTL is how long a login stays valid on this machine
	DefaultTTL = 30 * 24 * time.Hour
)

// Session is the caller's authentication state
type Session struct {
	Token string
}

// Authenticated reports whether a token is present
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store holds at most one token. A missing or expired token is reported
// as ok == false with a nil error.
type Store interface {
	Token(ctx context.Context) (token string, ok bool, err error)
	SetToken(ctx context.Context, token string, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Current reads the session from store. Storage errors are logged and
// read as signed out.
func Current(ctx context.Context, store Store, logger *zap.Logger) Session {
	token, ok, err := store.Token(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("read session token", zap.Error(err))
		}
		return Session{}
	}
	if !ok {
		return Session{}
	}
	return Session{Token: token}
}
