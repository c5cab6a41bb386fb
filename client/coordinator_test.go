package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/lifecycle"
	"servicehub/models"
)

// marketstub is a tiny in-memory rendition of the quote-to-booking flow,
// enough to drive the coordinator end to end over real HTTP.
type marketstub struct {
	request  models.Request
	quote    models.Quote
	booking  *models.Booking
	review   *models.Review
	reviewRC int // overrides the review GET status when nonzero
}

func (m *marketstub) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /requests/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(m.request)
	})
	mux.HandleFunc("GET /quotes/5", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(m.quote)
	})
	mux.HandleFunc("PATCH /quotes/5/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status models.QuoteStatus `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if m.quote.Status != models.QuotePending {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Quote is not pending"})
			return
		}
		m.quote.Status = body.Status
		if body.Status == models.QuoteAccepted {
			m.request.Status = models.RequestBooked
		}
		json.NewEncoder(w).Encode(m.quote)
	})
	mux.HandleFunc("GET /bookings", func(w http.ResponseWriter, r *http.Request) {
		if m.booking == nil {
			json.NewEncoder(w).Encode([]models.Booking{})
			return
		}
		json.NewEncoder(w).Encode([]models.Booking{*m.booking})
	})
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		if m.quote.Status != models.QuoteAccepted {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Quote is not accepted"})
			return
		}
		if m.booking != nil {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Quote already has a booking"})
			return
		}
		var in BookingInput
		json.NewDecoder(r.Body).Decode(&in)
		m.booking = &models.Booking{
			QuoteID:       in.QuoteID,
			CustomerID:    m.request.UserID,
			ProviderID:    m.quote.ProviderID,
			ScheduledTime: in.ScheduledTime,
			Status:        models.BookingScheduled,
		}
		m.booking.ID = 9
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m.booking)
	})
	mux.HandleFunc("GET /bookings/9", func(w http.ResponseWriter, r *http.Request) {
		if m.booking == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Booking not found"})
			return
		}
		json.NewEncoder(w).Encode(m.booking)
	})
	mux.HandleFunc("PATCH /bookings/9/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status models.BookingStatus `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		m.booking.Status = body.Status
		json.NewEncoder(w).Encode(m.booking)
	})
	mux.HandleFunc("GET /bookings/9/review", func(w http.ResponseWriter, r *http.Request) {
		if m.reviewRC != 0 {
			w.WriteHeader(m.reviewRC)
			fmt.Fprint(w, "{}")
			return
		}
		if m.review == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "No review yet"})
			return
		}
		json.NewEncoder(w).Encode(m.review)
	})
	mux.HandleFunc("POST /bookings/9/review", func(w http.ResponseWriter, r *http.Request) {
		if m.review != nil {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "You have already reviewed this booking."})
			return
		}
		var in ReviewInput
		json.NewDecoder(r.Body).Decode(&in)
		m.review = &models.Review{BookingID: 9, ReviewerID: m.request.UserID, Rating: in.Rating, Comment: in.Comment}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m.review)
	})
	return httptest.NewServer(mux)
}

func newStub() *marketstub {
	m := &marketstub{}
	m.request = models.Request{UserID: 1, ListingID: 3, Status: models.RequestQuoted}
	m.request.ID = 1
	m.quote = models.Quote{ProviderID: 2, RequestID: 1, ListingID: 3, Price: 120, Status: models.QuotePending}
	m.quote.ID = 5
	return m
}

func customerCoordinator(srv *httptest.Server) *Coordinator {
	c := New(srv.URL)
	s := NewSession(c)
	s.user = &models.User{ID: 1, Email: "cust@example.com", Role: models.RoleCustomer}
	return NewCoordinator(c, s)
}

func TestAcceptQuoteOffersScheduling(t *testing.T) {
	m := newStub()
	srv := m.server()
	defer srv.Close()
	co := customerCoordinator(srv)
	ctx := context.Background()

	quote, actions, err := co.AcceptQuote(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteAccepted, quote.Status)
	assert.Equal(t, models.RequestBooked, m.request.Status)
	assert.Contains(t, actions, lifecycle.ActionScheduleBooking)
	assert.NotContains(t, actions, lifecycle.ActionAcceptQuote)

	// Walking away leaves the accepted quote resumable.
	later, err := co.QuoteActions(ctx, 5)
	require.NoError(t, err)
	assert.Contains(t, later, lifecycle.ActionScheduleBooking)

	when := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	booking, err := co.ScheduleBooking(ctx, 5, when)
	require.NoError(t, err)
	assert.Equal(t, models.BookingScheduled, booking.Status)
	assert.Equal(t, uint(5), booking.QuoteID)

	// Scheduling consumed the affordance.
	after, err := co.QuoteActions(ctx, 5)
	require.NoError(t, err)
	assert.NotContains(t, after, lifecycle.ActionScheduleBooking)
}

func TestAcceptQuoteTwiceConflicts(t *testing.T) {
	m := newStub()
	srv := m.server()
	defer srv.Close()
	co := customerCoordinator(srv)
	ctx := context.Background()

	_, _, err := co.AcceptQuote(ctx, 5)
	require.NoError(t, err)

	_, _, err = co.AcceptQuote(ctx, 5)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestDeclineQuote(t *testing.T) {
	m := newStub()
	srv := m.server()
	defer srv.Close()
	co := customerCoordinator(srv)

	quote, err := co.DeclineQuote(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteRejected, quote.Status)
}

func TestBookingActionsFollowReviewTruth(t *testing.T) {
	m := newStub()
	srv := m.server()
	defer srv.Close()
	co := customerCoordinator(srv)
	ctx := context.Background()

	_, _, err := co.AcceptQuote(ctx, 5)
	require.NoError(t, err)
	_, err = co.ScheduleBooking(ctx, 5, time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Scheduled: the customer may cancel, nothing review-shaped yet.
	actions, err := co.BookingActions(ctx, 9)
	require.NoError(t, err)
	assert.Contains(t, actions, lifecycle.ActionCancelBooking)
	assert.NotContains(t, actions, lifecycle.ActionLeaveReview)

	m.booking.Status = models.BookingCompleted

	// Completed and verifiably unreviewed: the review is on offer.
	actions, err = co.BookingActions(ctx, 9)
	require.NoError(t, err)
	assert.Contains(t, actions, lifecycle.ActionLeaveReview)

	// Review state unknowable: only resolving it is offered.
	m.reviewRC = http.StatusInternalServerError
	actions, err = co.BookingActions(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionVerifyReview}, actions)
	m.reviewRC = 0

	// Reviewed: nothing left to do.
	m.review = &models.Review{BookingID: 9, ReviewerID: 1, Rating: 5}
	actions, err = co.BookingActions(ctx, 9)
	require.NoError(t, err)
	assert.NotContains(t, actions, lifecycle.ActionLeaveReview)
}

func TestLeaveReviewGating(t *testing.T) {
	m := newStub()
	srv := m.server()
	defer srv.Close()
	co := customerCoordinator(srv)
	ctx := context.Background()

	_, _, err := co.AcceptQuote(ctx, 5)
	require.NoError(t, err)
	_, err = co.ScheduleBooking(ctx, 5, time.Now().Add(time.Hour))
	require.NoError(t, err)
	m.booking.Status = models.BookingCompleted

	// Unresolvable existence check blocks submission entirely.
	m.reviewRC = http.StatusInternalServerError
	_, err = co.LeaveReview(ctx, 9, ReviewInput{Rating: 5, Comment: "great work"})
	assert.ErrorIs(t, err, lifecycle.ErrUnresolvedReview)
	m.reviewRC = 0

	review, err := co.LeaveReview(ctx, 9, ReviewInput{Rating: 5, Comment: "great work"})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	// Second attempt is caught by the existence check.
	_, err = co.LeaveReview(ctx, 9, ReviewInput{Rating: 4})
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyReviewed)

	// A duplicate that races past the check maps the server conflict
	// to the same answer.
	m.reviewRC = http.StatusNotFound
	_, err = co.LeaveReview(ctx, 9, ReviewInput{Rating: 4})
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyReviewed)
}

func TestCompleteAndCancelBooking(t *testing.T) {
	m := newStub()
	srv := m.server()
	defer srv.Close()
	co := customerCoordinator(srv)
	ctx := context.Background()

	_, _, err := co.AcceptQuote(ctx, 5)
	require.NoError(t, err)
	_, err = co.ScheduleBooking(ctx, 5, time.Now().Add(time.Hour))
	require.NoError(t, err)

	booking, err := co.CancelBooking(ctx, 9, "found someone closer")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, booking.Status)
}
