package app

import (
	"context"
	"fmt"
	"os"

	"github.com/existflow/irontodo/internal/api"
	"github.com/existflow/irontodo/internal/config"
	"github.com/existflow/irontodo/internal/db"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/notify"
	"github.com/existflow/irontodo/internal/session"
	"github.com/existflow/irontodo/internal/todos"
	"github.com/gofrs/flock"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB
	Client   *api.Client
	Session  *session.Store
	Todos    *todos.Manager
	Notifier notify.Notifier
	lockFile *flock.Flock

	// listErr is the outcome of the last load started by Start, Login or Signup
	listErr error
}

type options struct {
	lock    bool
	apiOpts []api.Option
}

// Option configures New
type Option func(*options)

// WithLock makes New take the single-instance lock
func WithLock() Option {
	return func(o *options) { o.lock = true }
}

// WithAPIOptions passes options through to the API client
func WithAPIOptions(opts ...api.Option) Option {
	return func(o *options) { o.apiOpts = append(o.apiOpts, opts...) }
}

// New creates a new application instance
func New(cfg *config.Config, notifier notify.Notifier, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Notifier: notifier,
	}

	if o.lock {
		if err := app.acquireLock(); err != nil {
			return nil, err
		}
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	apiOpts := append([]api.Option{api.WithTimeout(cfg.RequestTimeout)}, o.apiOpts...)
	client, err := api.NewClient(cfg.ServerURL, database, database, apiOpts...)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Client = client
	app.Session = session.New(client, database, notifier)
	app.Todos = todos.NewManager(client, notifier)

	return app, nil
}

// Start restores the session and, only once that has settled, loads the
// todos of a signed-in user. Only a failure to set up the session is
// returned: a failed fetch has already been shown as a notification and
// is kept for LoadErr.
func (a *App) Start(ctx context.Context) error {
	a.Session.Initialize(ctx)
	if !a.Session.Authenticated() {
		logger.Debug("Not signed in, skipping todo fetch")
		return nil
	}
	a.load(ctx)
	return nil
}

// Login signs in and loads the user's todos. The error is the login's own;
// a failed fetch afterwards leaves the user signed in.
func (a *App) Login(ctx context.Context, form session.LoginForm) error {
	if err := a.Session.Login(ctx, form); err != nil {
		return err
	}
	a.load(ctx)
	return nil
}

// Signup creates an account, signs in and loads its (empty) todo list
func (a *App) Signup(ctx context.Context, form session.SignupForm) error {
	if err := a.Session.Signup(ctx, form); err != nil {
		return err
	}
	a.load(ctx)
	return nil
}

// LoadErr reports whether the last load after Start, Login or Signup failed
func (a *App) LoadErr() error {
	return a.listErr
}

func (a *App) load(ctx context.Context) {
	a.listErr = a.Todos.List(ctx)
	if a.listErr != nil {
		logger.Warn("Todo fetch failed after sign-in", logger.Err(a.listErr))
	}
}

// Logout ends the session and forgets the todos once the server agrees
func (a *App) Logout(ctx context.Context) error {
	if err := a.Session.Logout(ctx); err != nil {
		return err
	}
	a.Todos.Clear()
	return nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another irontodo session is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		_ = a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
