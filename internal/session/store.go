// Package session owns the auth token and the current user profile.
//
// The store is the single writer of the persisted token, the token source
// for every outgoing request, and the component that reacts to session
// invalidation (a 401 on any authenticated call).
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taskbloom/taskbloom/internal/apiclient"
	"github.com/taskbloom/taskbloom/internal/model"
)

// Result is the outcome of a login or register attempt. On failure Message
// carries the server-provided reason or a generic fallback.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Config holds configuration for the session store
type Config struct {
	// BaseURL is the API base URL
	BaseURL string
	// Timeout bounds each API request (optional; defaults to the client's)
	Timeout time.Duration
	// ClientOptions are passed through to the API client (used by tests)
	ClientOptions []apiclient.Option
}

// Store is the session store. It owns the API client so that the bearer
// credential and the requests that carry it cannot get out of sync.
type Store struct {
	api    *apiclient.Client
	tokens TokenStore
	logger *slog.Logger

	mu      sync.RWMutex
	token   string
	user    *model.User
	loading bool

	subMu sync.Mutex
	subs  []func()
}

// NewStore creates a session store and its API client
func NewStore(cfg Config, tokens TokenStore, logger *slog.Logger) *Store {
	s := &Store{
		tokens:  tokens,
		logger:  logger,
		loading: true,
	}

	opts := cfg.ClientOptions
	if cfg.Timeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.Timeout))
	}
	s.api = apiclient.New(cfg.BaseURL, s, opts...)
	s.api.OnUnauthorized(s.Logout)

	return s
}

// Client returns the API client bound to this session. All authenticated
// services share it.
func (s *Store) Client() *apiclient.Client {
	return s.api
}

// Token returns the current bearer token, or "" when unauthenticated.
// Implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user profile, or nil when no profile
// has been resolved
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user profile is resolved
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading reports whether the initial profile resolution is still pending
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers a callback invoked whenever authentication state
// changes: login, logout, or initial resolution. Callbacks run synchronously
// on the mutating call.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

// Start seeds the token from the persisted store and, if one exists,
// resolves the user profile before settling the loading flag. Call once per
// process, before any dependent fetch.
func (s *Store) Start(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		s.logger.Warn("failed to load persisted token", slog.String("error", err.Error()))
	}

	if token == "" {
		s.settle()
		s.notify()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if ok := s.fetchUser(ctx); ok {
		s.settle()
		s.notify()
	}
	// On failure fetchUser already logged out, which settles and notifies
}

type credentialsRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates with email and password. On success the token and
// user are set atomically and the token is persisted; on failure state is
// left untouched.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	var resp authResponse
	err := s.api.Post(ctx, "/api/auth/login", credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		s.logger.Debug("login failed", slog.String("error", err.Error()))
		return Result{Success: false, Message: apiclient.ServerMessage(err, "Login failed")}
	}

	s.setSession(resp.Token, &resp.User)
	s.notify()
	return Result{Success: true}
}

// Register creates a new account. Same contract as Login.
func (s *Store) Register(ctx context.Context, username, email, password string) Result {
	req := credentialsRequest{Username: username, Email: email, Password: password}
	var resp authResponse
	err := s.api.Post(ctx, "/api/auth/register", req, &resp)
	if err != nil {
		s.logger.Debug("registration failed", slog.String("error", err.Error()))
		return Result{Success: false, Message: apiclient.ServerMessage(err, "Registration failed")}
	}

	s.setSession(resp.Token, &resp.User)
	s.notify()
	return Result{Success: true}
}

// Logout clears the session and erases the persisted token. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	wasActive := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.loading = false
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted token", slog.String("error", err.Error()))
	}

	if wasActive {
		s.notify()
	}
}

// fetchUser resolves the profile for the current token. Any failure,
// including a network error, is treated as an invalid session and forces
// logout. Returns true on success.
func (s *Store) fetchUser(ctx context.Context) bool {
	var resp struct {
		User model.User `json:"user"`
	}
	if err := s.api.Get(ctx, "/api/users/me", &resp); err != nil {
		s.logger.Warn("failed to fetch user profile", slog.String("error", err.Error()))
		s.Logout()
		return false
	}

	s.mu.Lock()
	s.user = &resp.User
	s.mu.Unlock()
	return true
}

// setSession stores the token and user together and persists the token
func (s *Store) setSession(token string, user *model.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.loading = false
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		s.logger.Warn("failed to persist token", slog.String("error", err.Error()))
	}
}

func (s *Store) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
