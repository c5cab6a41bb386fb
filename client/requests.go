package client

import (
	"context"
	"fmt"

	"servicehub/models"
)

// RequestsClient is the typed surface over the request endpoints.
type RequestsClient struct {
	c *Client
}

func (c *Client) Requests() *RequestsClient {
	return &RequestsClient{c: c}
}

func (rc *RequestsClient) Create(ctx context.Context, in RequestInput) (*models.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	resp, err := rc.c.Post(ctx, "/requests", in)
	if err != nil {
		return nil, err
	}
	var req models.Request
	if err := resp.DecodeJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (rc *RequestsClient) List(ctx context.Context) ([]models.Request, error) {
	resp, err := rc.c.Get(ctx, "/requests")
	if err != nil {
		return nil, err
	}
	var requests []models.Request
	if err := resp.DecodeJSON(&requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (rc *RequestsClient) Mine(ctx context.Context) ([]models.Request, error) {
	resp, err := rc.c.Get(ctx, "/requests/me")
	if err != nil {
		return nil, err
	}
	var requests []models.Request
	if err := resp.DecodeJSON(&requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (rc *RequestsClient) Get(ctx context.Context, id uint) (*models.Request, error) {
	resp, err := rc.c.Get(ctx, fmt.Sprintf("/requests/%d", id))
	if err != nil {
		return nil, err
	}
	var req models.Request
	if err := resp.DecodeJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (rc *RequestsClient) Update(ctx context.Context, id uint, fields map[string]any) (*models.Request, error) {
	resp, err := rc.c.Patch(ctx, fmt.Sprintf("/requests/%d", id), fields)
	if err != nil {
		return nil, err
	}
	var req models.Request
	if err := resp.DecodeJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (rc *RequestsClient) Close(ctx context.Context, id uint) (*models.Request, error) {
	resp, err := rc.c.Post(ctx, fmt.Sprintf("/requests/%d/close", id), nil)
	if err != nil {
		return nil, err
	}
	var req models.Request
	if err := resp.DecodeJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (rc *RequestsClient) Delete(ctx context.Context, id uint) error {
	_, err := rc.c.Delete(ctx, fmt.Sprintf("/requests/%d", id))
	return err
}

// Quotes lists every quote answering the request.
func (rc *RequestsClient) Quotes(ctx context.Context, requestID uint) ([]models.Quote, error) {
	resp, err := rc.c.Get(ctx, fmt.Sprintf("/requests/%d/quotes", requestID))
	if err != nil {
		return nil, err
	}
	var quotes []models.Quote
	if err := resp.DecodeJSON(&quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}
