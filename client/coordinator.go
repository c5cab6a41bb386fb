package client

import (
	"context"
	"time"

	"servicehub/lifecycle"
	"servicehub/models"
)

// Coordinator drives multi-step lifecycle flows for the logged-in user.
// It always branches on a fresh server read, never on whatever the caller
// happens to be holding, and every mutation is followed by a re-fetch of
// the canonical record.
type Coordinator struct {
	client  *Client
	session *Session
}

func NewCoordinator(c *Client, s *Session) *Coordinator {
	return &Coordinator{client: c, session: s}
}

func (co *Coordinator) actor() lifecycle.Actor {
	u := co.session.CurrentUser()
	if u == nil {
		return lifecycle.Actor{}
	}
	return lifecycle.Actor{ID: u.ID, Role: u.Role}
}

// RequestActions fetches the request and lists what the user may do with it.
func (co *Coordinator) RequestActions(ctx context.Context, requestID uint) ([]lifecycle.Action, error) {
	req, err := co.client.Requests().Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return lifecycle.RequestActions(*req, co.actor()), nil
}

// QuoteActions fetches the quote, its request and whether it was already
// booked, then lists the user's affordances.
func (co *Coordinator) QuoteActions(ctx context.Context, quoteID uint) ([]lifecycle.Action, error) {
	quote, err := co.client.Quotes().Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	req, err := co.client.Requests().Get(ctx, quote.RequestID)
	if err != nil {
		return nil, err
	}
	hasBooking := quote.Status == models.QuoteAccepted && co.quoteHasBooking(ctx, quote.ID)
	return lifecycle.QuoteActions(*quote, *req, hasBooking, co.actor(), time.Now()), nil
}

// quoteHasBooking checks the user's bookings for one created from the quote.
func (co *Coordinator) quoteHasBooking(ctx context.Context, quoteID uint) bool {
	bookings, err := co.client.Bookings().Mine(ctx)
	if err != nil {
		return false
	}
	for _, b := range bookings {
		if b.QuoteID == quoteID {
			return true
		}
	}
	return false
}

// BookingActions fetches the booking and resolves the reviewed flag before
// listing affordances. An unreachable review check leaves the flag Unknown,
// which keeps the review action off the table until it can be verified.
func (co *Coordinator) BookingActions(ctx context.Context, bookingID uint) ([]lifecycle.Action, error) {
	booking, err := co.client.Bookings().Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return lifecycle.BookingActions(*booking, co.actor(), co.reviewedFlag(ctx, bookingID)), nil
}

func (co *Coordinator) reviewedFlag(ctx context.Context, bookingID uint) lifecycle.Flag {
	_, err := co.client.Bookings().GetReview(ctx, bookingID)
	switch {
	case err == nil:
		return lifecycle.FlagKnownTrue
	case IsNotFound(err):
		return lifecycle.FlagKnownFalse
	default:
		return lifecycle.FlagUnknown
	}
}

// AcceptQuote accepts the quote and returns the fresh record with the next
// legal actions. Scheduling is offered but not required; walking away here
// leaves an accepted, unbooked quote the user can come back to.
func (co *Coordinator) AcceptQuote(ctx context.Context, quoteID uint) (*models.Quote, []lifecycle.Action, error) {
	if _, err := co.client.Quotes().UpdateStatus(ctx, quoteID, models.QuoteAccepted); err != nil {
		return nil, nil, err
	}
	quote, err := co.client.Quotes().Get(ctx, quoteID)
	if err != nil {
		return nil, nil, err
	}
	req, err := co.client.Requests().Get(ctx, quote.RequestID)
	if err != nil {
		return quote, nil, err
	}
	return quote, lifecycle.QuoteActions(*quote, *req, false, co.actor(), time.Now()), nil
}

// DeclineQuote rejects the quote and returns the fresh record.
func (co *Coordinator) DeclineQuote(ctx context.Context, quoteID uint) (*models.Quote, error) {
	if _, err := co.client.Quotes().UpdateStatus(ctx, quoteID, models.QuoteRejected); err != nil {
		return nil, err
	}
	return co.client.Quotes().Get(ctx, quoteID)
}

// ScheduleBooking creates the booking for an accepted quote and returns the
// canonical record.
func (co *Coordinator) ScheduleBooking(ctx context.Context, quoteID uint, when time.Time) (*models.Booking, error) {
	created, err := co.client.Bookings().Create(ctx, BookingInput{
		QuoteID:       quoteID,
		ScheduledTime: when,
	})
	if err != nil {
		return nil, err
	}
	return co.client.Bookings().Get(ctx, created.ID)
}

// CompleteBooking marks the booking done, unlocking reviews for both sides.
func (co *Coordinator) CompleteBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	if _, err := co.client.Bookings().UpdateStatus(ctx, bookingID, models.BookingCompleted, ""); err != nil {
		return nil, err
	}
	return co.client.Bookings().Get(ctx, bookingID)
}

// CancelBooking cancels a scheduled booking. The reason is optional
// advisory text; it changes nothing about the transition itself.
func (co *Coordinator) CancelBooking(ctx context.Context, bookingID uint, reason string) (*models.Booking, error) {
	if _, err := co.client.Bookings().UpdateStatus(ctx, bookingID, models.BookingCancelled, reason); err != nil {
		return nil, err
	}
	return co.client.Bookings().Get(ctx, bookingID)
}

// LeaveReview checks for an existing review before submitting, and treats
// the server's duplicate rejection the same way as finding one up front.
// When the existence check itself cannot complete, nothing is submitted.
func (co *Coordinator) LeaveReview(ctx context.Context, bookingID uint, in ReviewInput) (*models.Review, error) {
	switch co.reviewedFlag(ctx, bookingID) {
	case lifecycle.FlagKnownTrue:
		return nil, lifecycle.ErrAlreadyReviewed
	case lifecycle.FlagUnknown:
		return nil, lifecycle.ErrUnresolvedReview
	}

	review, err := co.client.Bookings().CreateReview(ctx, bookingID, in)
	if err != nil {
		if IsConflict(err) {
			return nil, lifecycle.ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}
