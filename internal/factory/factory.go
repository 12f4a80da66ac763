package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/taskbloom/taskbloom/internal/analytics"
	"github.com/taskbloom/taskbloom/internal/dependencies/clock"
	"github.com/taskbloom/taskbloom/internal/dependencies/random"
	"github.com/taskbloom/taskbloom/internal/garden"
	"github.com/taskbloom/taskbloom/internal/reward"
	"github.com/taskbloom/taskbloom/internal/session"
	"github.com/taskbloom/taskbloom/internal/tasks"
)

// DefaultBaseURL is the API endpoint used when none is configured
const DefaultBaseURL = "http://localhost:5000"

// App contains all wired application components
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Stores and services
	Session   *session.Store
	Garden    *garden.Store
	Tasks     *tasks.Service
	Analytics *analytics.Service
	Rewards   *reward.Coordinator
}

// Config holds configuration for the application factory
type Config struct {
	// BaseURL is the API base URL (optional; defaults to DefaultBaseURL)
	BaseURL string
	// Tokens is the token persistence backend (optional; defaults to the
	// file store under the user's home directory)
	Tokens session.TokenStore
	// Timeout bounds each API request (optional)
	Timeout time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = session.NewFileTokenStore(session.DefaultTokenPath())
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return newWithDependencies(baseURL, cfg.Timeout, tokens, clock.New(), random.New(), logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(baseURL string, timeout time.Duration, tokens session.TokenStore, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	sess := session.NewStore(session.Config{
		BaseURL: baseURL,
		Timeout: timeout,
	}, tokens, logger)

	api := sess.Client()
	gardenStore := garden.New(api, sess, clk, logger)
	taskService := tasks.New(api, logger)
	analyticsService := analytics.New(api, logger)
	rewards := reward.New(taskService, gardenStore, rnd, logger)

	return &App{
		Clock:     clk,
		Random:    rnd,
		Session:   sess,
		Garden:    gardenStore,
		Tasks:     taskService,
		Analytics: analyticsService,
		Rewards:   rewards,
	}
}
