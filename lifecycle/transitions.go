package lifecycle

import (
	"servicehub/models"
)

// The transition tables. Absence means the move is illegal; terminal states
// have no entry. Requests only ever move forward.
var requestTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestOpen:   {models.RequestQuoted, models.RequestBooked, models.RequestClosed},
	models.RequestQuoted: {models.RequestBooked, models.RequestClosed, models.RequestDeclined},
}

var quoteTransitions = map[models.QuoteStatus][]models.QuoteStatus{
	models.QuotePending: {models.QuoteAccepted, models.QuoteRejected, models.QuoteExpired},
}

var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingScheduled:  {models.BookingInProgress, models.BookingCompleted, models.BookingCancelled},
	models.BookingInProgress: {models.BookingCompleted},
}

func contains[S ~string](list []S, s S) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func CanRequestTransition(from, to models.RequestStatus) bool {
	return contains(requestTransitions[from], to)
}

func CanQuoteTransition(from, to models.QuoteStatus) bool {
	return contains(quoteTransitions[from], to)
}

func CanBookingTransition(from, to models.BookingStatus) bool {
	return contains(bookingTransitions[from], to)
}

// RequestTerminal reports whether the request can never change again.
func RequestTerminal(s models.RequestStatus) bool {
	return len(requestTransitions[s]) == 0
}

func QuoteTerminal(s models.QuoteStatus) bool {
	return len(quoteTransitions[s]) == 0
}

func BookingTerminal(s models.BookingStatus) bool {
	return len(bookingTransitions[s]) == 0
}

// RequestStatusAfterQuoteCreated is the implied request transition when a
// provider's quote lands: an open request becomes quoted, anything else
// keeps its status.
func RequestStatusAfterQuoteCreated(cur models.RequestStatus) models.RequestStatus {
	if cur == models.RequestOpen {
		return models.RequestQuoted
	}
	return cur
}
