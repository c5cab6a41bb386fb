package models

import (
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
)

type Quote struct {
	gorm.Model
	ProviderID uint        `json:"provider_id"`
	Provider   User        `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	RequestID  uint        `json:"request_id"`
	Request    Request     `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	ListingID  uint        `json:"listing_id"`
	Listing    Listing     `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Price      float64     `json:"price" gorm:"not null"`
	Message    string      `json:"message"`
	ExpiresAt  *time.Time  `json:"expires_at"`
	Status     QuoteStatus `json:"status"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.Status == "" {
		q.Status = QuotePending
	}
	return nil
}

// IsExpired reports whether the quote's expiry has passed, regardless of
// whether the sweeper has already flipped its status.
func (q *Quote) IsExpired(now time.Time) bool {
	if q.Status == QuoteExpired {
		return true
	}
	return q.ExpiresAt != nil && q.ExpiresAt.Before(now)
}

// HasBooking reports whether a booking was already created from this quote.
// An accepted quote with no booking is a valid resting state (the customer
// may schedule later), but a second booking is never allowed.
func (q *Quote) HasBooking(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Booking{}).Where("quote_id = ?", q.ID).Count(&count).Error
	return count > 0, err
}
