package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingScheduled  BookingStatus = "scheduled"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

type Booking struct {
	gorm.Model
	QuoteID       uint          `json:"quote_id" gorm:"uniqueIndex"`
	Quote         Quote         `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	CustomerID    uint          `json:"customer_id"`
	Customer      User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID    uint          `json:"provider_id"`
	Provider      User          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ListingID     uint          `json:"listing_id"`
	Listing       Listing       `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	ScheduledTime time.Time     `json:"scheduled_time" gorm:"not null"`
	Status        BookingStatus `json:"status"`
	CancelReason  string        `json:"cancel_reason,omitempty"`

	// HasReview is a denormalized hint only. Review gating always goes
	// through an actual review lookup; see HasReviewBy.
	HasReview bool `json:"has_review"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BookingScheduled
	}
	return nil
}

// IsParty reports whether userID is the customer or the provider of the
// booking. Anyone else may not even read it.
func (b *Booking) IsParty(userID uint) bool {
	return userID == b.CustomerID || userID == b.ProviderID
}

// HasReviewBy checks the reviews table for an existing review left by
// reviewerID on this booking. This is the authoritative check the cached
// HasReview flag must be reconciled against.
func (b *Booking) HasReviewBy(tx *gorm.DB, reviewerID uint) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("booking_id = ? AND reviewer_id = ?", b.ID, reviewerID).
		Count(&count).Error
	return count > 0, err
}
