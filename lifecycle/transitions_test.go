package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"servicehub/models"
)

func TestRequestTransitionsAreForwardOnly(t *testing.T) {
	tests := []struct {
		name string
		from models.RequestStatus
		to   models.RequestStatus
		ok   bool
	}{
		{"open to quoted", models.RequestOpen, models.RequestQuoted, true},
		{"open to booked", models.RequestOpen, models.RequestBooked, true},
		{"open to closed", models.RequestOpen, models.RequestClosed, true},
		{"quoted to booked", models.RequestQuoted, models.RequestBooked, true},
		{"quoted to declined", models.RequestQuoted, models.RequestDeclined, true},
		{"quoted to open is backward", models.RequestQuoted, models.RequestOpen, false},
		{"booked to open is backward", models.RequestBooked, models.RequestOpen, false},
		{"booked to quoted is backward", models.RequestBooked, models.RequestQuoted, false},
		{"booked is terminal", models.RequestBooked, models.RequestClosed, false},
		{"closed is terminal", models.RequestClosed, models.RequestOpen, false},
		{"declined is terminal", models.RequestDeclined, models.RequestQuoted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanRequestTransition(tt.from, tt.to))
		})
	}
}

func TestNoSequenceMovesARequestBackward(t *testing.T) {
	order := map[models.RequestStatus]int{
		models.RequestOpen:   0,
		models.RequestQuoted: 1,
		models.RequestBooked: 2,
		// terminal side-exits
		models.RequestClosed:   2,
		models.RequestDeclined: 2,
	}
	for from, targets := range requestTransitions {
		for _, to := range targets {
			assert.GreaterOrEqual(t, order[to], order[from],
				"transition %s -> %s moves backward", from, to)
		}
	}
}

func TestQuoteTransitions(t *testing.T) {
	assert.True(t, CanQuoteTransition(models.QuotePending, models.QuoteAccepted))
	assert.True(t, CanQuoteTransition(models.QuotePending, models.QuoteRejected))
	assert.True(t, CanQuoteTransition(models.QuotePending, models.QuoteExpired))

	for _, terminal := range []models.QuoteStatus{models.QuoteAccepted, models.QuoteRejected, models.QuoteExpired} {
		assert.True(t, QuoteTerminal(terminal))
		assert.False(t, CanQuoteTransition(terminal, models.QuotePending))
		assert.False(t, CanQuoteTransition(terminal, models.QuoteAccepted))
	}
}

func TestBookingTransitions(t *testing.T) {
	assert.True(t, CanBookingTransition(models.BookingScheduled, models.BookingInProgress))
	assert.True(t, CanBookingTransition(models.BookingScheduled, models.BookingCompleted))
	assert.True(t, CanBookingTransition(models.BookingScheduled, models.BookingCancelled))
	assert.True(t, CanBookingTransition(models.BookingInProgress, models.BookingCompleted))

	// cancellation is only legal from scheduled
	assert.False(t, CanBookingTransition(models.BookingInProgress, models.BookingCancelled))
	assert.False(t, CanBookingTransition(models.BookingCompleted, models.BookingCancelled))

	assert.True(t, BookingTerminal(models.BookingCompleted))
	assert.True(t, BookingTerminal(models.BookingCancelled))
}

func TestRequestStatusAfterQuoteCreated(t *testing.T) {
	assert.Equal(t, models.RequestQuoted, RequestStatusAfterQuoteCreated(models.RequestOpen))
	assert.Equal(t, models.RequestQuoted, RequestStatusAfterQuoteCreated(models.RequestQuoted))
	assert.Equal(t, models.RequestBooked, RequestStatusAfterQuoteCreated(models.RequestBooked))
}
