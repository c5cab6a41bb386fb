package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/models"
)

func signTestToken(t *testing.T, userID, email, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newAuthServer(t *testing.T, me models.User) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.FormValue("username") != "cust@example.com" || r.FormValue("password") != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  signTestToken(t, "1", me.Email, string(me.Role)),
			"token_type":    "bearer",
			"refresh_token": "refresh-1",
			"user":          me,
		})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing or malformed JWT"})
			return
		}
		json.NewEncoder(w).Encode(me)
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Successfully logged out"})
	})
	return httptest.NewServer(mux)
}

func TestLoginLoadsCanonicalIdentity(t *testing.T) {
	me := models.User{ID: 1, Email: "cust@example.com", Role: models.RoleCustomer}
	srv := newAuthServer(t, me)
	defer srv.Close()

	c := New(srv.URL)
	s := NewSession(c)

	require.NoError(t, s.Login(context.Background(), "cust@example.com", "hunter2"))
	require.True(t, s.IsAuthenticated())
	assert.True(t, s.IsCustomer())
	assert.False(t, s.IsProvider())
	assert.Equal(t, uint(1), s.CurrentUser().ID)
	assert.Equal(t, "cust@example.com", s.CurrentUser().Email)
	assert.NotEmpty(t, c.Token())
}

func TestLoginBadCredentialsLeavesLoggedOut(t *testing.T) {
	srv := newAuthServer(t, models.User{ID: 1, Email: "cust@example.com", Role: models.RoleCustomer})
	defer srv.Close()

	c := New(srv.URL)
	s := NewSession(c)

	err := s.Login(context.Background(), "cust@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, c.Token())
	assert.Nil(t, s.CurrentUser())
}

func TestLoginMeFailureLeavesLoggedOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  signTestToken(t, "1", "cust@example.com", "customer"),
			"token_type":    "bearer",
			"refresh_token": "refresh-1",
		})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Failed to fetch user"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	s := NewSession(c)

	err := s.Login(context.Background(), "cust@example.com", "hunter2")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, c.Token())
}

func TestLogoutIsIdempotent(t *testing.T) {
	me := models.User{ID: 1, Email: "cust@example.com", Role: models.RoleCustomer}
	srv := newAuthServer(t, me)
	defer srv.Close()

	c := New(srv.URL)
	s := NewSession(c)

	// Logging out while logged out is a no-op success.
	require.NoError(t, s.Logout(context.Background()))
	require.NoError(t, s.Logout(context.Background()))

	require.NoError(t, s.Login(context.Background(), "cust@example.com", "hunter2"))
	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, c.Token())
	require.NoError(t, s.Logout(context.Background()))
}

func TestRejectedTokenForcesLogout(t *testing.T) {
	me := models.User{ID: 1, Email: "cust@example.com", Role: models.RoleCustomer}
	authSrv := newAuthServer(t, me)
	defer authSrv.Close()

	c := New(authSrv.URL)
	s := NewSession(c)
	require.NoError(t, s.Login(context.Background(), "cust@example.com", "hunter2"))

	// Repoint at a server that rejects the session outright.
	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired JWT"})
	}))
	defer rejecting.Close()
	c.BaseURL = rejecting.URL

	_, err := c.Requests().Mine(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, c.Token())
}

func TestUserFromClaims(t *testing.T) {
	token := signTestToken(t, "42", "pro@example.com", "provider")
	u := userFromClaims(token)
	require.NotNil(t, u)
	assert.Equal(t, uint(42), u.ID)
	assert.Equal(t, "pro@example.com", u.Email)
	assert.Equal(t, models.RoleProvider, u.Role)

	assert.Nil(t, userFromClaims("not-a-token"))
}
