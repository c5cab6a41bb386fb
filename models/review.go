package models

import (
	"gorm.io/gorm"
)

// Review is one direction of post-booking feedback. The unique index on
// (booking_id, reviewer_id) makes customer-reviews-provider and
// provider-reviews-customer independent single-slot relations, and turns a
// concurrent duplicate create into a constraint violation instead of a
// silent second row.
type Review struct {
	gorm.Model
	BookingID  uint    `json:"booking_id" gorm:"uniqueIndex:idx_booking_reviewer"`
	Booking    Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	ReviewerID uint    `json:"reviewer_id" gorm:"uniqueIndex:idx_booking_reviewer"`
	Reviewer   User    `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	RevieweeID uint    `json:"reviewee_id"`
	Reviewee   User    `json:"reviewee,omitempty" gorm:"foreignKey:RevieweeID"`
	Rating     int     `json:"rating" gorm:"not null"`
	Comment    string  `json:"comment"`
}
