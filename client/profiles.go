package client

import (
	"context"
	"fmt"

	"servicehub/models"
)

// ProfilesClient is the typed surface over the profile endpoints.
type ProfilesClient struct {
	c *Client
}

func (c *Client) Profiles() *ProfilesClient {
	return &ProfilesClient{c: c}
}

func (pc *ProfilesClient) Me(ctx context.Context) (*models.Profile, error) {
	resp, err := pc.c.Get(ctx, "/profiles/me")
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := resp.DecodeJSON(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (pc *ProfilesClient) UpdateMe(ctx context.Context, fields map[string]any) (*models.Profile, error) {
	resp, err := pc.c.Patch(ctx, "/profiles/me", fields)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := resp.DecodeJSON(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// PublicProfile is the read-anyone view: profile plus rating context.
type PublicProfile struct {
	ID          uint            `json:"id"`
	Role        models.Role     `json:"role"`
	Profile     *models.Profile `json:"profile"`
	ReviewCount int64           `json:"review_count"`
}

func (pc *ProfilesClient) Public(ctx context.Context, userID uint) (*PublicProfile, error) {
	resp, err := pc.c.Get(ctx, fmt.Sprintf("/profiles/%d", userID))
	if err != nil {
		return nil, err
	}
	var pub PublicProfile
	if err := resp.DecodeJSON(&pub); err != nil {
		return nil, err
	}
	return &pub, nil
}
