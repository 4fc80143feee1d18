// Package fakeapi is an in-memory implementation of the todo REST API. Tests
// run it behind httptest and cmd/irontodo-mockapi serves it for local
// development. It keeps users, refresh sessions and todos in maps and can be
// told to fail individual operations.
package fakeapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RefreshCookie is the name of the long-lived refresh credential cookie
const RefreshCookie = "refreshToken"

// Op identifies an API operation for failure injection and call counting
type Op string

const (
	OpRefresh Op = "refresh"
	OpLogin   Op = "login"
	OpSignup  Op = "signup"
	OpLogout  Op = "logout"
	OpList    Op = "list"
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
)

// StatusDrop makes an injected failure close the connection without a
// response, which the client sees as a transport error
const StatusDrop = -1

type account struct {
	user model.User
	hash []byte
}

// Server is the fake API
type Server struct {
	echo *echo.Echo

	// AccessTTL is the lifetime of issued access tokens
	AccessTTL time.Duration
	// RefreshTTL is the lifetime of the refresh cookie
	RefreshTTL time.Duration

	secret []byte
	now    func() time.Time

	mu       sync.Mutex
	accounts map[string]*account // by email
	sessions map[string]string   // refresh token -> user id
	todos    map[string][]model.Todo
	failures map[Op]int
	calls    map[Op]int
}

// New creates a fake API with no users
func New() *Server {
	s := &Server{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		secret:     []byte("irontodo-fake-api-secret"),
		now:        time.Now,
		accounts:   make(map[string]*account),
		sessions:   make(map[string]string),
		todos:      make(map[string][]model.Todo),
		failures:   make(map[Op]int),
		calls:      make(map[Op]int),
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			err := next(c)
			logger.Debug("Fake API request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", c.Response().Status),
				logger.F("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", s.handleHealth)

	auth := e.Group("/api/auth")
	auth.POST("/signup", s.handleSignup, s.inject(OpSignup))
	auth.POST("/login", s.handleLogin, s.inject(OpLogin))
	auth.POST("/refresh-token", s.handleRefresh, s.inject(OpRefresh))
	auth.POST("/logout", s.handleLogout, s.inject(OpLogout), s.authMiddleware)

	todos := e.Group("/api/todos")
	todos.GET("", s.handleList, s.inject(OpList), s.authMiddleware)
	todos.POST("", s.handleCreate, s.inject(OpCreate), s.authMiddleware)
	todos.PUT("/:id", s.handleUpdate, s.inject(OpUpdate), s.authMiddleware)
	todos.DELETE("/:id", s.handleDelete, s.inject(OpDelete), s.authMiddleware)

	s.echo = e
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops a server started with Start
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Fail makes every following call of op answer with status, or drop the
// connection when status is StatusDrop
func (s *Server) Fail(op Op, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

// Heal removes an injected failure
func (s *Server) Heal(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op)
}

// Calls returns how many requests reached op, failed ones included
func (s *Server) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls returns the number of requests across all operations
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Server) inject(op Op) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s.mu.Lock()
			s.calls[op]++
			status, failing := s.failures[op]
			s.mu.Unlock()

			if !failing {
				return next(c)
			}
			if status == StatusDrop {
				conn, _, err := c.Response().Hijack()
				if err != nil {
					return err
				}
				return conn.Close()
			}
			return c.JSON(status, map[string]string{"message": http.StatusText(status)})
		}
	}
}

func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}
