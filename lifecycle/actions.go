package lifecycle

import (
	"time"

	"servicehub/models"
)

// Action is a user-facing affordance on an entity in its current state.
// The UI renders exactly the actions returned here and nothing else.
type Action string

const (
	ActionEditRequest  Action = "edit_request"
	ActionCloseRequest Action = "close_request"
	ActionSendQuote    Action = "send_quote"

	ActionAcceptQuote     Action = "accept_quote"
	ActionDeclineQuote    Action = "decline_quote"
	ActionWithdrawQuote   Action = "withdraw_quote"
	ActionScheduleBooking Action = "schedule_booking"

	ActionStartBooking    Action = "start_booking"
	ActionCompleteBooking Action = "complete_booking"
	ActionCancelBooking   Action = "cancel_booking"

	ActionLeaveReview  Action = "leave_review"
	ActionVerifyReview Action = "verify_review"
)

// RequestActions lists what the actor may do with a request right now.
func RequestActions(r models.Request, actor Actor) []Action {
	var actions []Action
	if r.UserID == actor.ID && !RequestTerminal(r.Status) {
		actions = append(actions, ActionEditRequest, ActionCloseRequest)
	}
	if actor.isProvider() && r.UserID != actor.ID &&
		(r.Status == models.RequestOpen || r.Status == models.RequestQuoted) {
		actions = append(actions, ActionSendQuote)
	}
	return actions
}

// QuoteActions lists what the actor may do with a quote. requestOwnerID is
// the customer who owns the parent request; hasBooking whether a booking
// already exists for the quote.
func QuoteActions(q models.Quote, req models.Request, hasBooking bool, actor Actor, now time.Time) []Action {
	var actions []Action
	if req.UserID == actor.ID {
		if q.Status == models.QuotePending && !q.IsExpired(now) {
			// Accepting books the request, so a closed request offers
			// only decline.
			if CanRequestTransition(req.Status, models.RequestBooked) {
				actions = append(actions, ActionAcceptQuote)
			}
			actions = append(actions, ActionDeclineQuote)
		}
		// Accepted but never booked: the scheduling flow is resumable.
		if q.Status == models.QuoteAccepted && !hasBooking {
			actions = append(actions, ActionScheduleBooking)
		}
	}
	if q.ProviderID == actor.ID && q.Status == models.QuotePending {
		actions = append(actions, ActionWithdrawQuote)
	}
	return actions
}

// BookingActions lists what the actor may do with a booking. reviewed is
// the tri-state answer to "did this actor already review the booking"; when
// it is Unknown the only offered action is resolving it.
func BookingActions(b models.Booking, actor Actor, reviewed Flag) []Action {
	if !b.IsParty(actor.ID) {
		return nil
	}
	var actions []Action
	switch b.Status {
	case models.BookingScheduled:
		if actor.ID == b.ProviderID {
			actions = append(actions, ActionStartBooking, ActionCompleteBooking)
		}
		if actor.ID == b.CustomerID {
			actions = append(actions, ActionCancelBooking)
		}
	case models.BookingInProgress:
		if actor.ID == b.ProviderID {
			actions = append(actions, ActionCompleteBooking)
		}
	case models.BookingCompleted:
		switch reviewed {
		case FlagUnknown:
			actions = append(actions, ActionVerifyReview)
		case FlagKnownFalse:
			actions = append(actions, ActionLeaveReview)
		}
	}
	return actions
}
