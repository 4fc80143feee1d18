package fakeapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/existflow/irontodo/internal/api"
	"github.com/existflow/irontodo/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddUser registers an account directly, bypassing the signup endpoint
func (s *Server) AddUser(name, email, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.accounts[email]; exists {
		return model.User{}, fmt.Errorf("user %s already exists", email)
	}
	acc := &account{
		user: model.User{ID: uuid.New().String(), Name: name, Email: email},
		hash: hash,
	}
	s.accounts[email] = acc
	return acc.user, nil
}

// IssueTokens signs in an existing user without going through HTTP and
// returns an access token and a refresh credential for the cookie
func (s *Server) IssueTokens(email string) (accessToken, refreshToken string, err error) {
	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(email)]
	s.mu.Unlock()
	if !ok {
		return "", "", fmt.Errorf("unknown user %s", email)
	}

	accessToken, err = s.signAccessToken(acc.user)
	if err != nil {
		return "", "", err
	}
	return accessToken, s.newSession(acc.user.ID), nil
}

// handleSignup handles account creation
func (s *Server) handleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "name, email and password required")
	}

	user, err := s.AddUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, http.StatusConflict, "user already exists")
	}
	return s.respondWithSession(c, http.StatusCreated, user)
}

// handleLogin handles email/password login
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request")
	}

	s.mu.Lock()
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)); err != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}
	return s.respondWithSession(c, http.StatusOK, acc.user)
}

// handleRefresh trades the refresh cookie for a new access token
func (s *Server) handleRefresh(c echo.Context) error {
	cookie, err := c.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		return jsonError(c, http.StatusUnauthorized, "refresh token required")
	}

	s.mu.Lock()
	userID, ok := s.sessions[cookie.Value]
	var user model.User
	if ok {
		user, ok = s.userByIDLocked(userID)
	}
	s.mu.Unlock()
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "invalid refresh token")
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, model.AuthResponse{AccessToken: token, User: &user})
}

// handleLogout ends every refresh session of the user and clears the cookie
func (s *Server) handleLogout(c echo.Context) error {
	userID := c.Get("user_id").(string)

	s.mu.Lock()
	for token, owner := range s.sessions {
		if owner == userID {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: RefreshCookie, Value: "", Path: "/api/auth", MaxAge: -1, HttpOnly: true})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) respondWithSession(c echo.Context, status int, user model.User) error {
	token, err := s.signAccessToken(user)
	if err != nil {
		c.Logger().Error("sign token:", err)
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(&http.Cookie{
		Name:     RefreshCookie,
		Value:    s.newSession(user.ID),
		Path:     "/api/auth",
		MaxAge:   int(s.RefreshTTL.Seconds()),
		HttpOnly: true,
	})
	return c.JSON(status, model.AuthResponse{AccessToken: token, User: &user})
}

func (s *Server) newSession(userID string) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()
	return token
}

func (s *Server) signAccessToken(user model.User) (string, error) {
	now := s.now().UTC()
	claims := api.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Email: user.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) userByIDLocked(id string) (model.User, bool) {
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return model.User{}, false
}
