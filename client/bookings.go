package client

import (
	"context"
	"fmt"

	"servicehub/models"
)

// BookingsClient is the typed surface over the booking endpoints.
type BookingsClient struct {
	c *Client
}

func (c *Client) Bookings() *BookingsClient {
	return &BookingsClient{c: c}
}

func (bc *BookingsClient) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	resp, err := bc.c.Post(ctx, "/bookings", in)
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := resp.DecodeJSON(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (bc *BookingsClient) Mine(ctx context.Context) ([]models.Booking, error) {
	resp, err := bc.c.Get(ctx, "/bookings")
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := resp.DecodeJSON(&bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (bc *BookingsClient) Get(ctx context.Context, id uint) (*models.Booking, error) {
	resp, err := bc.c.Get(ctx, fmt.Sprintf("/bookings/%d", id))
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := resp.DecodeJSON(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (bc *BookingsClient) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus, cancelReason string) (*models.Booking, error) {
	body := map[string]any{"status": status}
	if cancelReason != "" {
		body["cancel_reason"] = cancelReason
	}
	resp, err := bc.c.Patch(ctx, fmt.Sprintf("/bookings/%d/status", id), body)
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := resp.DecodeJSON(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (bc *BookingsClient) CreateReview(ctx context.Context, bookingID uint, in ReviewInput) (*models.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	resp, err := bc.c.Post(ctx, fmt.Sprintf("/bookings/%d/review", bookingID), in)
	if err != nil {
		return nil, err
	}
	var review models.Review
	if err := resp.DecodeJSON(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReview answers "did I already review this booking". A 404 is the
// definitive no, not an error the caller should bubble up blindly.
func (bc *BookingsClient) GetReview(ctx context.Context, bookingID uint) (*models.Review, error) {
	resp, err := bc.c.Get(ctx, fmt.Sprintf("/bookings/%d/review", bookingID))
	if err != nil {
		return nil, err
	}
	var review models.Review
	if err := resp.DecodeJSON(&review); err != nil {
		return nil, err
	}
	return &review, nil
}
