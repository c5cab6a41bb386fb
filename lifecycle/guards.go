package lifecycle

import (
	"time"

	"servicehub/models"
)

// CanCreateRequest gates a customer asking for a service. Providers never
// create requests, unavailable listings take none, and nobody requests
// their own listing.
func CanCreateRequest(listing models.Listing, actor Actor) error {
	if !actor.isCustomer() {
		return ErrNotPermitted
	}
	if listing.UserID == actor.ID {
		return ErrNotPermitted
	}
	if !listing.Available {
		return ErrIllegalTransition
	}
	return nil
}

// CanCloseRequest gates the owner retiring their own request before it is
// booked.
func CanCloseRequest(req models.Request, actor Actor) error {
	if req.UserID != actor.ID {
		return ErrNotPermitted
	}
	if !CanRequestTransition(req.Status, models.RequestClosed) {
		return ErrIllegalTransition
	}
	return nil
}

// CanCreateQuote gates a provider quoting a request. The provider must own
// the listing the request targets, and the request must still be taking
// quotes (open, or already quoted by someone else).
func CanCreateQuote(req models.Request, listing models.Listing, actor Actor) error {
	if !actor.isProvider() || listing.UserID != actor.ID {
		return ErrNotPermitted
	}
	if req.Status != models.RequestOpen && req.Status != models.RequestQuoted {
		return ErrIllegalTransition
	}
	return nil
}

// CanAcceptQuote gates the two-step acceptance. Only the customer who owns
// the parent request may accept, the quote must still be pending and
// unexpired, the request must still be able to move to booked (a closed
// request takes no accepts), and no sibling quote may already be accepted —
// at most one quote per request ever reaches accepted.
func CanAcceptQuote(q models.Quote, req models.Request, siblingAccepted bool, actor Actor, now time.Time) error {
	if req.UserID != actor.ID {
		return ErrNotPermitted
	}
	if q.IsExpired(now) {
		return ErrQuoteExpired
	}
	if !CanQuoteTransition(q.Status, models.QuoteAccepted) {
		return ErrIllegalTransition
	}
	if !CanRequestTransition(req.Status, models.RequestBooked) {
		return ErrIllegalTransition
	}
	if siblingAccepted {
		return ErrAlreadyAccepted
	}
	return nil
}

// CanDeclineQuote gates the owning customer rejecting a pending quote.
// Declining is terminal for the quote and never books anything.
func CanDeclineQuote(q models.Quote, req models.Request, actor Actor) error {
	if req.UserID != actor.ID {
		return ErrNotPermitted
	}
	if !CanQuoteTransition(q.Status, models.QuoteRejected) {
		return ErrIllegalTransition
	}
	return nil
}

// CanScheduleBooking gates step two of acceptance. The quote must be
// accepted and not yet booked; an accepted quote with no booking is a valid
// resting state the customer may return to at any time.
func CanScheduleBooking(q models.Quote, req models.Request, hasBooking bool, actor Actor, when, now time.Time) error {
	if !actor.isCustomer() || req.UserID != actor.ID {
		return ErrNotPermitted
	}
	if q.Status != models.QuoteAccepted {
		return ErrIllegalTransition
	}
	if hasBooking {
		return ErrAlreadyBooked
	}
	if !when.After(now) {
		return ErrIllegalTransition
	}
	return nil
}

// CanUpdateBooking gates a status change on a booking. The provider drives
// the work forward (in_progress, completed); only the customer cancels, and
// only while the booking is still scheduled.
func CanUpdateBooking(b models.Booking, to models.BookingStatus, actor Actor) error {
	if !b.IsParty(actor.ID) {
		return ErrNotPermitted
	}
	if !CanBookingTransition(b.Status, to) {
		return ErrIllegalTransition
	}
	switch to {
	case models.BookingInProgress, models.BookingCompleted:
		if actor.ID != b.ProviderID {
			return ErrNotPermitted
		}
	case models.BookingCancelled:
		if actor.ID != b.CustomerID {
			return ErrNotPermitted
		}
	}
	return nil
}

// CanReview gates leaving a review. Either party may review the other once
// the booking completes, at most once per direction. The reviewed flag must
// be resolved to a known value first: an Unknown flag fails the gate rather
// than being treated as "not reviewed".
func CanReview(b models.Booking, actor Actor, reviewed Flag) error {
	if !b.IsParty(actor.ID) {
		return ErrNotPermitted
	}
	if b.Status != models.BookingCompleted {
		return ErrNotCompleted
	}
	switch reviewed {
	case FlagUnknown:
		return ErrUnresolvedReview
	case FlagKnownTrue:
		return ErrAlreadyReviewed
	}
	return nil
}

// RevieweeFor resolves the other party of the booking from the reviewer's
// point of view.
func RevieweeFor(b models.Booking, reviewerID uint) (uint, bool) {
	switch reviewerID {
	case b.CustomerID:
		return b.ProviderID, true
	case b.ProviderID:
		return b.CustomerID, true
	}
	return 0, false
}
