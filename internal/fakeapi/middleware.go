package fakeapi

import (
	"net/http"
	"strings"

	"github.com/existflow/irontodo/internal/api"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// authMiddleware checks the bearer access token
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return jsonError(c, http.StatusUnauthorized, "authorization required")
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return jsonError(c, http.StatusUnauthorized, "invalid authorization format")
		}

		claims := &api.AccessClaims{}
		_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, "invalid token")
		}

		c.Set("user_id", claims.Subject)
		return next(c)
	}
}
