package client

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v4"

	"servicehub/models"
)

// Session tracks who is logged in. Identity comes from the token claims
// the moment login succeeds, then is overwritten by the canonical /users/me
// record; from then on the server copy is the one that counts.
type Session struct {
	client *Client

	mu           sync.RWMutex
	user         *models.User
	refreshToken string
}

func NewSession(c *Client) *Session {
	s := &Session{client: c}
	c.OnUnauthorized = s.forceLogout
	return s
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// Login authenticates with the form-encoded credentials shape and loads the
// user's identity. Any failure on the way leaves the session unauthenticated;
// there is no half-logged-in state.
func (s *Session) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	resp, err := s.client.PostForm(ctx, "/login", form)
	if err != nil {
		log.Printf("login failed: %v", err)
		s.clear()
		return err
	}

	var tokens tokenResponse
	if err := resp.DecodeJSON(&tokens); err != nil {
		log.Printf("login response undecodable: %v", err)
		s.clear()
		return err
	}

	s.client.SetToken(tokens.AccessToken)

	// Claims give an identity to show immediately, before /users/me answers.
	provisional := userFromClaims(tokens.AccessToken)
	if provisional == nil {
		provisional = &tokens.User
	}
	s.mu.Lock()
	s.user = provisional
	s.refreshToken = tokens.RefreshToken
	s.mu.Unlock()

	me, err := s.fetchMe(ctx)
	if err != nil {
		log.Printf("fetching canonical user failed: %v", err)
		s.clear()
		return err
	}
	s.mu.Lock()
	s.user = me
	s.mu.Unlock()
	return nil
}

// Logout is idempotent: logging out while logged out is a no-op success.
func (s *Session) Logout(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}
	// Best effort; the token is discarded either way.
	if _, err := s.client.Post(ctx, "/auth/logout", nil); err != nil {
		log.Printf("logout call failed, discarding session anyway: %v", err)
	}
	s.clear()
	return nil
}

// Refresh trades the refresh token for a new access token.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.refreshToken
	s.mu.RUnlock()
	if refresh == "" {
		return &RequestFailed{StatusCode: 401, Message: "no refresh token"}
	}

	resp, err := s.client.Post(ctx, "/auth/refresh", map[string]string{"refresh_token": refresh})
	if err != nil {
		return err
	}
	var tokens tokenResponse
	if err := resp.DecodeJSON(&tokens); err != nil {
		return err
	}
	s.client.SetToken(tokens.AccessToken)
	if tokens.RefreshToken != "" {
		s.mu.Lock()
		s.refreshToken = tokens.RefreshToken
		s.mu.Unlock()
	}
	return nil
}

func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

func (s *Session) IsCustomer() bool {
	u := s.CurrentUser()
	return u != nil && u.IsCustomer()
}

func (s *Session) IsProvider() bool {
	u := s.CurrentUser()
	return u != nil && u.IsProvider()
}

func (s *Session) fetchMe(ctx context.Context) (*models.User, error) {
	resp, err := s.client.Get(ctx, "/users/me")
	if err != nil {
		return nil, err
	}
	var me models.User
	if err := resp.DecodeJSON(&me); err != nil {
		return nil, err
	}
	return &me, nil
}

// forceLogout is wired to the 401 hook: a rejected token means the session
// is over no matter what the local state says.
func (s *Session) forceLogout() {
	if s.IsAuthenticated() {
		log.Println("session rejected by server, logging out")
	}
	s.clear()
}

func (s *Session) clear() {
	s.client.ClearToken()
	s.mu.Lock()
	s.user = nil
	s.refreshToken = ""
	s.mu.Unlock()
}

// userFromClaims decodes identity out of the unverified token payload. The
// server already verified the credentials; this is display data, not trust.
func userFromClaims(token string) *models.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &models.User{
		ID:    uint(id),
		Email: email,
		Role:  models.Role(role),
	}
}
