package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"servicehub/models"
)

// ListingFilter narrows the public listing search.
type ListingFilter struct {
	ServiceID     uint
	Location      string
	OnlyAvailable bool
}

// ListingsClient is the typed surface over the listing endpoints.
type ListingsClient struct {
	c *Client
}

func (c *Client) Listings() *ListingsClient {
	return &ListingsClient{c: c}
}

func (lc *ListingsClient) List(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	q := url.Values{}
	if filter.ServiceID != 0 {
		q.Set("service_id", strconv.FormatUint(uint64(filter.ServiceID), 10))
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.OnlyAvailable {
		q.Set("available", "true")
	}
	path := "/listings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := lc.c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var listings []models.Listing
	if err := resp.DecodeJSON(&listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (lc *ListingsClient) Get(ctx context.Context, id uint) (*models.Listing, error) {
	resp, err := lc.c.Get(ctx, fmt.Sprintf("/listings/%d", id))
	if err != nil {
		return nil, err
	}
	var listing models.Listing
	if err := resp.DecodeJSON(&listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (lc *ListingsClient) Mine(ctx context.Context) ([]models.Listing, error) {
	resp, err := lc.c.Get(ctx, "/listings/me")
	if err != nil {
		return nil, err
	}
	var listings []models.Listing
	if err := resp.DecodeJSON(&listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (lc *ListingsClient) Create(ctx context.Context, in ListingInput) (*models.Listing, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	resp, err := lc.c.Post(ctx, "/listings", in)
	if err != nil {
		return nil, err
	}
	var listing models.Listing
	if err := resp.DecodeJSON(&listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (lc *ListingsClient) Update(ctx context.Context, id uint, fields map[string]any) (*models.Listing, error) {
	resp, err := lc.c.Patch(ctx, fmt.Sprintf("/listings/%d", id), fields)
	if err != nil {
		return nil, err
	}
	var listing models.Listing
	if err := resp.DecodeJSON(&listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (lc *ListingsClient) Delete(ctx context.Context, id uint) error {
	_, err := lc.c.Delete(ctx, fmt.Sprintf("/listings/%d", id))
	return err
}
