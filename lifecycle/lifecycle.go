// Package lifecycle is the single source of truth for the
// request/quote/booking/review state machines: which status transitions
// exist, which actor may trigger them, and which follow-up actions an
// entity currently offers. Controllers and the SDK both consult it, so the
// rules live in exactly one place.
package lifecycle

import (
	"errors"

	"servicehub/models"
)

var (
	// ErrIllegalTransition: the target status is not reachable from the
	// current one, for any actor.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrNotPermitted: the transition exists but this actor's role or
	// identity may not trigger it.
	ErrNotPermitted = errors.New("action not permitted")

	// ErrQuoteExpired: the quote's expiry passed before the action.
	ErrQuoteExpired = errors.New("quote has expired")

	// ErrAlreadyAccepted: another quote on the same request is already
	// accepted; at most one may ever be.
	ErrAlreadyAccepted = errors.New("request already has an accepted quote")

	// ErrAlreadyBooked: a booking was already created from this quote.
	ErrAlreadyBooked = errors.New("quote already has a booking")

	// ErrAlreadyReviewed: this reviewer already left a review on the booking.
	ErrAlreadyReviewed = errors.New("booking already reviewed by this user")

	// ErrNotCompleted: review requested on a booking that is not completed.
	ErrNotCompleted = errors.New("booking is not completed")

	// ErrUnresolvedReview: review existence is unknown and must be resolved
	// against the server before gating; see Flag.
	ErrUnresolvedReview = errors.New("review existence not yet verified")
)

// Actor is the identity a transition is evaluated against.
type Actor struct {
	ID   uint
	Role models.Role
}

func (a Actor) isCustomer() bool { return a.Role == models.RoleCustomer }
func (a Actor) isProvider() bool { return a.Role == models.RoleProvider }
