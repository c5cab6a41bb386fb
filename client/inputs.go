package client

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RequestInput is what a customer submits to open a request on a listing.
type RequestInput struct {
	ListingID     uint      `json:"listing_id" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	Location      string    `json:"location"`
	PreferredDate time.Time `json:"preferred_date"`
}

func (in RequestInput) Validate() error {
	if err := checkStruct(in); err != nil {
		return err
	}
	if !in.PreferredDate.IsZero() && in.PreferredDate.Before(time.Now()) {
		return &ValidationError{Field: "preferred_date", Reason: "must not be in the past"}
	}
	return nil
}

// QuoteInput is a provider's offer against a request.
type QuoteInput struct {
	RequestID uint       `json:"request_id" validate:"required"`
	ListingID uint       `json:"listing_id" validate:"required"`
	Price     float64    `json:"price" validate:"required,gt=0"`
	Message   string     `json:"message"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (in QuoteInput) Validate() error {
	if err := checkStruct(in); err != nil {
		return err
	}
	if in.ExpiresAt != nil && in.ExpiresAt.Before(time.Now()) {
		return &ValidationError{Field: "expires_at", Reason: "must be in the future"}
	}
	return nil
}

// ListingInput is a provider's service offering.
type ListingInput struct {
	ServiceID   uint    `json:"service_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	MinPrice    float64 `json:"min_price" validate:"gte=0"`
	MaxPrice    float64 `json:"max_price" validate:"gte=0"`
	Available   bool    `json:"available"`
}

func (in ListingInput) Validate() error {
	if err := checkStruct(in); err != nil {
		return err
	}
	if in.MaxPrice > 0 && in.MinPrice > in.MaxPrice {
		return &ValidationError{Field: "min_price", Reason: "must not exceed max_price"}
	}
	return nil
}

// BookingInput schedules an accepted quote.
type BookingInput struct {
	QuoteID       uint      `json:"quote_id" validate:"required"`
	ScheduledTime time.Time `json:"scheduled_time" validate:"required"`
}

func (in BookingInput) Validate() error {
	if err := checkStruct(in); err != nil {
		return err
	}
	if in.ScheduledTime.Before(time.Now()) {
		return &ValidationError{Field: "scheduled_time", Reason: "must be in the future"}
	}
	return nil
}

// ReviewInput is one direction of post-booking feedback.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (in ReviewInput) Validate() error {
	return checkStruct(in)
}

// checkStruct maps the first validator failure onto a ValidationError so
// callers only ever see the package's own error taxonomy.
func checkStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return &ValidationError{Field: fe.Field(), Reason: "failed rule " + fe.Tag()}
	}
	return &ValidationError{Field: "input", Reason: err.Error()}
}
