package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/model"
)

// errInvalidAuthResponse is returned when a 2xx auth response lacks a token or user
var errInvalidAuthResponse = errors.New("response missing access token or user")

// RefreshToken exchanges the stored cookie credential for a new access token
func (c *Client) RefreshToken(ctx context.Context) (*model.AuthResponse, error) {
	return c.authCall(ctx, request{
		op:     "refresh token",
		method: http.MethodPost,
		path:   "/api/auth/refresh-token",
	})
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	return c.authCall(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/api/auth/login",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
	})
}

// Signup creates a new account and signs it in
func (c *Client) Signup(ctx context.Context, name, email, password string) (*model.AuthResponse, error) {
	return c.authCall(ctx, request{
		op:     "signup",
		method: http.MethodPost,
		path:   "/api/auth/signup",
		body: map[string]string{
			"name":     name,
			"email":    email,
			"password": password,
		},
	})
}

// Logout ends the session on the server
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{
		op:     "logout",
		method: http.MethodPost,
		path:   "/api/auth/logout",
		auth:   true,
	}, nil)
}

func (c *Client) authCall(ctx context.Context, r request) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid() {
		return nil, &apperr.RequestError{Op: r.op, Err: errInvalidAuthResponse}
	}
	return &resp, nil
}
