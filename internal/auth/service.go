// Package auth exchanges credentials for a session token and ends
// sessions.
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/jobsapi"
	"github.com/project-tktt/jobby/internal/session"
)

type API interface {
	LoginRequest(creds jobsapi.Credentials) fetch.RequestFunc
}

type State = fetch.State[string]

type Service struct {
	api     API
	store   session.Store
	ttl     time.Duration
	machine *fetch.Machine[string]
	logger  *zap.Logger
}

// NewService creates a login service. A non-positive ttl means
// session.DefaultTTL.
func NewService(api API, store session.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Service{
		api:     api,
		store:   store,
		ttl:     ttl,
		machine: fetch.New[string](logger, fetch.WithName("login")),
		logger:  logger,
	}
}

func (s *Service) State() State            { return s.machine.State() }
func (s *Service) OnChange(fn func(State)) { s.machine.OnChange(fn) }

// Login posts creds and persists the returned token. Empty fields are
// sent as-is. A token that cannot be stored turns the result into a
// failure.
func (s *Service) Login(ctx context.Context, creds jobsapi.Credentials) State {
	st := s.machine.Run(ctx, s.api.LoginRequest(creds), jobsapi.DecodeLogin)
	if !st.Success() {
		return st
	}
	if err := s.store.SetToken(ctx, st.Value, s.ttl); err != nil {
		s.logger.Error("store session token", zap.Error(err))
		return s.machine.Reject(fetch.InvalidError(fmt.Sprintf("could not save session: %v", err)))
	}
	s.logger.Info("signed in", zap.String("username", creds.Username))
	return st
}

// Logout clears the stored token
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}
