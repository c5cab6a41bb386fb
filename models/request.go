package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestOpen     RequestStatus = "open"
	RequestQuoted   RequestStatus = "quoted"
	RequestBooked   RequestStatus = "booked"
	RequestClosed   RequestStatus = "closed"
	RequestDeclined RequestStatus = "declined"
)

// Request is a customer's ask against a provider's listing. Its status only
// moves forward; quoting and booking happen as side effects of Quote
// transitions, never by a direct status write from the customer.
type Request struct {
	gorm.Model
	UserID        uint          `json:"user_id"`
	User          User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ListingID     uint          `json:"listing_id"`
	Listing       Listing       `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	PreferredDate time.Time     `json:"preferred_date"`
	Status        RequestStatus `json:"status"`

	Quotes []Quote `json:"quotes,omitempty" gorm:"foreignKey:RequestID"`
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = RequestOpen
	}
	return nil
}
