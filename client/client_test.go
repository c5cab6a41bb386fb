package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")
	_, err := c.Get(context.Background(), "/anything")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	c.ClearToken()
	_, err = c.Get(context.Background(), "/anything")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		notFound   bool
		denied     bool
		conflicted bool
	}{
		{
			name:    "404 with fiber map body",
			status:  http.StatusNotFound,
			body:    `{"error":"Request not found"}`,
			wantMsg: "Request not found", notFound: true,
		},
		{
			name:    "403 with message body",
			status:  http.StatusForbidden,
			body:    `{"message":"Access denied","error":"detail"}`,
			wantMsg: "Access denied", denied: true,
		},
		{
			name:   "401 is denied",
			status: http.StatusUnauthorized,
			body:   `{"error":"Missing or malformed JWT"}`,
			wantMsg: "Missing or malformed JWT", denied: true,
		},
		{
			name:    "409 conflict",
			status:  http.StatusConflict,
			body:    `{"error":"You have already reviewed this booking."}`,
			wantMsg: "You have already reviewed this booking.", conflicted: true,
		},
		{
			name:    "non-json body passes through",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantMsg: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Get(context.Background(), "/x")
			require.Error(t, err)

			rf, ok := err.(*RequestFailed)
			require.True(t, ok, "expected *RequestFailed, got %T", err)
			assert.Equal(t, tt.status, rf.StatusCode)
			assert.Equal(t, tt.wantMsg, rf.Message)
			assert.Equal(t, tt.notFound, rf.NotFound())
			assert.Equal(t, tt.denied, rf.AccessDenied())
			assert.Equal(t, tt.conflicted, rf.Conflict())
		})
	}
}

func TestTransportFailureIsNetworkUnavailable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	c.HTTPClient.Timeout = 200 * time.Millisecond

	_, err := c.Get(context.Background(), "/x")
	require.Error(t, err)
	assert.True(t, IsNetworkUnavailable(err))
	assert.False(t, IsNotFound(err))

	nu, ok := err.(*NetworkUnavailable)
	require.True(t, ok)
	assert.Error(t, nu.Unwrap())
}

func TestUnauthorizedHookFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	fired := false
	c.OnUnauthorized = func() { fired = true }

	_, err := c.Get(context.Background(), "/x")
	require.Error(t, err)
	assert.True(t, fired)
}

func TestValidationRejectsBeforeSending(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.Requests().Create(context.Background(), RequestInput{
		Description:   "no listing",
		PreferredDate: time.Now().Add(time.Hour),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "ListingID", ve.Field)

	_, err = c.Requests().Create(context.Background(), RequestInput{
		ListingID:     1,
		Description:   "past date",
		PreferredDate: time.Now().Add(-time.Hour),
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "preferred_date", ve.Field)

	_, err = c.Quotes().Create(context.Background(), QuoteInput{
		RequestID: 1, ListingID: 1, Price: -5,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Price", ve.Field)

	_, err = c.Listings().Create(context.Background(), ListingInput{
		ServiceID: 1, Title: "Plumbing", MinPrice: 100, MaxPrice: 50,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "min_price", ve.Field)

	_, err = c.Bookings().CreateReview(context.Background(), 1, ReviewInput{Rating: 6})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Rating", ve.Field)

	assert.False(t, called, "invalid input must never reach the server")
}
