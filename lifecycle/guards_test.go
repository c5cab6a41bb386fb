package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/models"
)

var (
	customer = Actor{ID: 1, Role: models.RoleCustomer}
	provider = Actor{ID: 2, Role: models.RoleProvider}
	stranger = Actor{ID: 99, Role: models.RoleCustomer}
	now      = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
)

func openRequest() models.Request {
	r := models.Request{UserID: customer.ID, ListingID: 10, Status: models.RequestOpen}
	r.ID = 100
	return r
}

func pendingQuote() models.Quote {
	q := models.Quote{ProviderID: provider.ID, RequestID: 100, ListingID: 10,
		Price: 120, Status: models.QuotePending}
	q.ID = 200
	return q
}

func TestCanCreateRequest(t *testing.T) {
	listing := models.Listing{UserID: provider.ID, Available: true}

	assert.NoError(t, CanCreateRequest(listing, customer))
	assert.ErrorIs(t, CanCreateRequest(listing, provider), ErrNotPermitted)

	ownListing := models.Listing{UserID: customer.ID, Available: true}
	assert.ErrorIs(t, CanCreateRequest(ownListing, customer), ErrNotPermitted)

	unavailable := models.Listing{UserID: provider.ID, Available: false}
	assert.ErrorIs(t, CanCreateRequest(unavailable, customer), ErrIllegalTransition)
}

func TestCanCreateQuote(t *testing.T) {
	req := openRequest()
	listing := models.Listing{UserID: provider.ID, Available: true}

	assert.NoError(t, CanCreateQuote(req, listing, provider))

	// still legal while other quotes are pending
	req.Status = models.RequestQuoted
	assert.NoError(t, CanCreateQuote(req, listing, provider))

	req.Status = models.RequestBooked
	assert.ErrorIs(t, CanCreateQuote(req, listing, provider), ErrIllegalTransition)

	req.Status = models.RequestOpen
	assert.ErrorIs(t, CanCreateQuote(req, listing, customer), ErrNotPermitted)

	otherListing := models.Listing{UserID: 77}
	assert.ErrorIs(t, CanCreateQuote(req, otherListing, provider), ErrNotPermitted)
}

func TestAcceptQuoteFlow(t *testing.T) {
	req := openRequest()
	q := pendingQuote()

	// the owning customer accepts a pending quote
	require.NoError(t, CanAcceptQuote(q, req, false, customer, now))

	// request moves to booked, quote to accepted; scheduling is now offered
	q.Status = models.QuoteAccepted
	req.Status = models.RequestBooked
	actions := QuoteActions(q, req, false, customer, now)
	assert.Contains(t, actions, ActionScheduleBooking)

	// scheduling with a valid future time passes the gate
	when := now.Add(48 * time.Hour)
	assert.NoError(t, CanScheduleBooking(q, req, false, customer, when, now))

	// a past time does not
	assert.ErrorIs(t, CanScheduleBooking(q, req, false, customer, now.Add(-time.Hour), now),
		ErrIllegalTransition)

	// once booked, scheduling is gone
	assert.ErrorIs(t, CanScheduleBooking(q, req, true, customer, when, now), ErrAlreadyBooked)
	assert.NotContains(t, QuoteActions(q, req, true, customer, now), ActionScheduleBooking)
}

func TestAcceptQuoteRejectsNonOwnersAndSiblings(t *testing.T) {
	req := openRequest()
	q := pendingQuote()

	assert.ErrorIs(t, CanAcceptQuote(q, req, false, stranger, now), ErrNotPermitted)
	assert.ErrorIs(t, CanAcceptQuote(q, req, false, provider, now), ErrNotPermitted)

	// at most one accepted quote per request
	assert.ErrorIs(t, CanAcceptQuote(q, req, true, customer, now), ErrAlreadyAccepted)

	q.Status = models.QuoteRejected
	assert.ErrorIs(t, CanAcceptQuote(q, req, false, customer, now), ErrIllegalTransition)
}

func TestAcceptQuoteOnClosedRequest(t *testing.T) {
	req := openRequest()
	q := pendingQuote()

	// the customer retires the request before picking a quote
	req.Status = models.RequestQuoted
	require.NoError(t, CanCloseRequest(req, customer))
	req.Status = models.RequestClosed
	require.True(t, RequestTerminal(req.Status))
	require.False(t, CanRequestTransition(req.Status, models.RequestBooked))

	// a still-pending quote on it cannot be accepted; closed never
	// reopens to booked
	assert.ErrorIs(t, CanAcceptQuote(q, req, false, customer, now), ErrIllegalTransition)
	assert.NotContains(t, QuoteActions(q, req, false, customer, now), ActionAcceptQuote)
}

func TestAcceptQuoteExpired(t *testing.T) {
	req := openRequest()
	q := pendingQuote()
	past := now.Add(-time.Minute)
	q.ExpiresAt = &past

	assert.ErrorIs(t, CanAcceptQuote(q, req, false, customer, now), ErrQuoteExpired)

	// expired quotes offer nothing to accept or decline
	assert.NotContains(t, QuoteActions(q, req, false, customer, now), ActionAcceptQuote)
}

func TestDeclineQuoteIsTerminalAndBooksNothing(t *testing.T) {
	req := openRequest()
	q := pendingQuote()

	require.NoError(t, CanDeclineQuote(q, req, customer))

	q.Status = models.QuoteRejected
	assert.True(t, QuoteTerminal(q.Status))
	// the request did not advance to booked and no booking gate opens
	assert.ErrorIs(t, CanScheduleBooking(q, req, false, customer, now.Add(time.Hour), now),
		ErrIllegalTransition)

	assert.ErrorIs(t, CanDeclineQuote(q, req, customer), ErrIllegalTransition)
	assert.ErrorIs(t, CanDeclineQuote(pendingQuote(), req, stranger), ErrNotPermitted)
}

func TestCanUpdateBooking(t *testing.T) {
	b := models.Booking{CustomerID: customer.ID, ProviderID: provider.ID,
		Status: models.BookingScheduled}

	tests := []struct {
		name  string
		to    models.BookingStatus
		actor Actor
		want  error
	}{
		{"provider starts", models.BookingInProgress, provider, nil},
		{"provider completes", models.BookingCompleted, provider, nil},
		{"customer cancels", models.BookingCancelled, customer, nil},
		{"customer cannot complete", models.BookingCompleted, customer, ErrNotPermitted},
		{"provider cannot cancel", models.BookingCancelled, provider, ErrNotPermitted},
		{"stranger touches nothing", models.BookingCompleted, stranger, ErrNotPermitted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpdateBooking(b, tt.to, tt.actor)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}

	done := b
	done.Status = models.BookingCompleted
	assert.ErrorIs(t, CanUpdateBooking(done, models.BookingCancelled, customer), ErrIllegalTransition)

	started := b
	started.Status = models.BookingInProgress
	assert.ErrorIs(t, CanUpdateBooking(started, models.BookingCancelled, customer), ErrIllegalTransition)
}

func TestReviewGating(t *testing.T) {
	b := models.Booking{CustomerID: customer.ID, ProviderID: provider.ID,
		Status: models.BookingCompleted}

	// unknown flag must be resolved before the gate opens
	assert.ErrorIs(t, CanReview(b, customer, FlagUnknown), ErrUnresolvedReview)
	assert.NoError(t, CanReview(b, customer, FlagKnownFalse))
	assert.ErrorIs(t, CanReview(b, customer, FlagKnownTrue), ErrAlreadyReviewed)

	// both directions are independent slots
	assert.NoError(t, CanReview(b, provider, FlagKnownFalse))

	scheduled := b
	scheduled.Status = models.BookingScheduled
	assert.ErrorIs(t, CanReview(scheduled, customer, FlagKnownFalse), ErrNotCompleted)

	assert.ErrorIs(t, CanReview(b, stranger, FlagKnownFalse), ErrNotPermitted)
}

func TestBookingActionsFollowTheFlag(t *testing.T) {
	b := models.Booking{CustomerID: customer.ID, ProviderID: provider.ID,
		Status: models.BookingCompleted}

	// with an unresolved flag the only affordance is the existence check
	assert.Equal(t, []Action{ActionVerifyReview}, BookingActions(b, customer, FlagUnknown))
	assert.Equal(t, []Action{ActionLeaveReview}, BookingActions(b, customer, FlagKnownFalse))
	assert.Empty(t, BookingActions(b, customer, FlagKnownTrue))

	assert.Empty(t, BookingActions(b, stranger, FlagKnownFalse))
}

func TestReviewAffordanceIsPerDirection(t *testing.T) {
	// One party reviewing flips the shared has_review hint, but the other
	// party's slot is still empty and keeps its affordance. The hint must
	// never feed the flag.
	b := models.Booking{CustomerID: customer.ID, ProviderID: provider.ID,
		Status: models.BookingCompleted, HasReview: true}

	assert.Equal(t, []Action{ActionLeaveReview}, BookingActions(b, customer, FlagKnownFalse))
	assert.Empty(t, BookingActions(b, provider, FlagKnownTrue))
	assert.NoError(t, CanReview(b, customer, FlagKnownFalse))
}

func TestFlagFromPtr(t *testing.T) {
	assert.Equal(t, FlagUnknown, FlagFromPtr(nil))

	v := false
	assert.Equal(t, FlagKnownFalse, FlagFromPtr(&v))
	v = true
	assert.Equal(t, FlagKnownTrue, FlagFromPtr(&v))

	assert.False(t, FlagUnknown.Known())
	assert.True(t, FlagKnownFalse.Known())
}

func TestRevieweeFor(t *testing.T) {
	b := models.Booking{CustomerID: 1, ProviderID: 2}

	id, ok := RevieweeFor(b, 1)
	assert.True(t, ok)
	assert.Equal(t, uint(2), id)

	id, ok = RevieweeFor(b, 2)
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)

	_, ok = RevieweeFor(b, 3)
	assert.False(t, ok)
}
