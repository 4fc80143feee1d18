// Package session tracks whether the user is signed in. The persisted access
// token and the in-memory user always change together.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
)

// AuthAPI is the part of the API client the session needs
type AuthAPI interface {
	RefreshToken(ctx context.Context) (*model.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Signup(ctx context.Context, name, email, password string) (*model.AuthResponse, error)
	Logout(ctx context.Context) error
}

// TokenStorage persists the access token
type TokenStorage interface {
	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	ClearAccessToken(ctx context.Context) error
}

// Store is the single source of truth for "is this user logged in"
type Store struct {
	api    AuthAPI
	tokens TokenStorage
	notify notify.Notifier

	mu          sync.Mutex
	state       model.SessionState
	initialized bool
}

// New creates an unauthenticated, uninitialized store
func New(api AuthAPI, tokens TokenStorage, notifier notify.Notifier) *Store {
	return &Store{api: api, tokens: tokens, notify: notifier}
}

// Initialize restores the session at startup. With a persisted token it
// exchanges the refresh cookie for a new access token; any failure clears the
// token. It always ends authenticated or unauthenticated, never in between.
func (s *Store) Initialize(ctx context.Context) {
	defer s.markInitialized()

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		logger.Error("Failed to read access token", logger.Err(err))
		s.signOut(ctx)
		return
	}
	if token == "" {
		logger.Debug("No access token, starting signed out")
		s.setUser(nil)
		return
	}

	resp, err := s.api.RefreshToken(ctx)
	if err != nil {
		logger.Warn("Token refresh failed", logger.Err(err))
		s.signOut(ctx)
		return
	}

	if err := s.signIn(ctx, resp); err != nil {
		logger.Error("Failed to store refreshed token", logger.Err(err))
		s.signOut(ctx)
		return
	}
	logger.Info("Session restored", logger.F("email", resp.User.Email))
}

// Login signs in with email and password
func (s *Store) Login(ctx context.Context, form LoginForm) error {
	if err := form.Validate(); err != nil {
		s.notify.Error(err.Error())
		return err
	}

	resp, err := s.api.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		logger.Warn("Login failed", logger.Err(err))
		if errors.Is(err, apperr.ErrUnauthorized) {
			s.notify.Error("Invalid email or password")
		} else {
			s.notify.Error("Error logging in")
		}
		return err
	}

	if err := s.signIn(ctx, resp); err != nil {
		s.notify.Error("Error logging in")
		return err
	}
	logger.Info("Logged in", logger.F("email", resp.User.Email))
	s.notify.Success("Logged in successfully")
	return nil
}

// Signup creates an account and signs it in
func (s *Store) Signup(ctx context.Context, form SignupForm) error {
	if err := form.Validate(); err != nil {
		s.notify.Error(err.Error())
		return err
	}

	resp, err := s.api.Signup(ctx, strings.TrimSpace(form.Name), strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		logger.Warn("Signup failed", logger.Err(err))
		s.notify.Error("Error creating account")
		return err
	}

	if err := s.signIn(ctx, resp); err != nil {
		s.notify.Error("Error creating account")
		return err
	}
	logger.Info("Account created", logger.F("email", resp.User.Email))
	s.notify.Success("Account created successfully")
	return nil
}

// Logout ends the session on the server. Only a successful call clears the
// persisted token and the session; on failure both are kept.
func (s *Store) Logout(ctx context.Context) error {
	if !s.Authenticated() {
		return apperr.ErrNotAuthenticated
	}

	if err := s.api.Logout(ctx); err != nil {
		logger.Warn("Logout failed", logger.Err(err))
		s.notify.Error("Error logging out")
		return err
	}

	s.signOut(ctx)
	logger.Info("Logged out")
	s.notify.Success("Logged out successfully")
	return nil
}

// State returns a snapshot of the session
func (s *Store) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if state.User != nil {
		u := *state.User
		state.User = &u
	}
	return state
}

// Authenticated reports whether a user is signed in
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

// User returns the signed-in user, nil when signed out
func (s *Store) User() *model.User {
	return s.State().User
}

// Initialized reports whether Initialize has completed
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// signIn persists the token and then sets the user
func (s *Store) signIn(ctx context.Context, resp *model.AuthResponse) error {
	if !resp.Valid() {
		return apperr.Wrap(apperr.ErrUnauthorized, "incomplete auth response")
	}
	if err := s.tokens.SetAccessToken(ctx, resp.AccessToken); err != nil {
		return apperr.Wrap(err, "failed to save access token")
	}
	s.setUser(resp.User)
	return nil
}

// signOut clears the token and the user. The in-memory session is cleared
// even if storage fails so no half state is observable.
func (s *Store) signOut(ctx context.Context) {
	if err := s.tokens.ClearAccessToken(ctx); err != nil {
		logger.Error("Failed to clear access token", logger.Err(err))
	}
	s.setUser(nil)
}

func (s *Store) setUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.state = model.SessionState{}
		return
	}
	u := *user
	s.state = model.SessionState{Authenticated: true, User: &u}
}

func (s *Store) markInitialized() {
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
}
