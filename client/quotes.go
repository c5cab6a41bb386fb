package client

import (
	"context"
	"fmt"

	"servicehub/models"
)

// QuotesClient is the typed surface over the quote endpoints.
type QuotesClient struct {
	c *Client
}

func (c *Client) Quotes() *QuotesClient {
	return &QuotesClient{c: c}
}

func (qc *QuotesClient) Create(ctx context.Context, in QuoteInput) (*models.Quote, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	resp, err := qc.c.Post(ctx, "/quotes", in)
	if err != nil {
		return nil, err
	}
	var quote models.Quote
	if err := resp.DecodeJSON(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (qc *QuotesClient) Mine(ctx context.Context) ([]models.Quote, error) {
	resp, err := qc.c.Get(ctx, "/quotes")
	if err != nil {
		return nil, err
	}
	var quotes []models.Quote
	if err := resp.DecodeJSON(&quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (qc *QuotesClient) Get(ctx context.Context, id uint) (*models.Quote, error) {
	resp, err := qc.c.Get(ctx, fmt.Sprintf("/quotes/%d", id))
	if err != nil {
		return nil, err
	}
	var quote models.Quote
	if err := resp.DecodeJSON(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateStatus moves the quote to accepted or rejected. The server is the
// gatekeeper; an illegal move comes back as a conflict.
func (qc *QuotesClient) UpdateStatus(ctx context.Context, id uint, status models.QuoteStatus) (*models.Quote, error) {
	resp, err := qc.c.Patch(ctx, fmt.Sprintf("/quotes/%d/status", id), map[string]any{
		"status": status,
	})
	if err != nil {
		return nil, err
	}
	var quote models.Quote
	if err := resp.DecodeJSON(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (qc *QuotesClient) Withdraw(ctx context.Context, id uint) error {
	_, err := qc.c.Delete(ctx, fmt.Sprintf("/quotes/%d", id))
	return err
}
