package client

import (
	"context"
	"fmt"

	"servicehub/models"
)

// NotificationsClient is the typed surface over the notification endpoints.
type NotificationsClient struct {
	c *Client
}

func (c *Client) Notifications() *NotificationsClient {
	return &NotificationsClient{c: c}
}

func (nc *NotificationsClient) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	path := "/notifications"
	if unreadOnly {
		path += "?unread_only=true"
	}
	resp, err := nc.c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	if err := resp.DecodeJSON(&notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (nc *NotificationsClient) UnreadCount(ctx context.Context) (int64, error) {
	resp, err := nc.c.Get(ctx, "/notifications/count")
	if err != nil {
		return 0, err
	}
	var body struct {
		UnreadCount int64 `json:"unread_count"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return 0, err
	}
	return body.UnreadCount, nil
}

func (nc *NotificationsClient) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	resp, err := nc.c.Post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil)
	if err != nil {
		return nil, err
	}
	var notification models.Notification
	if err := resp.DecodeJSON(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (nc *NotificationsClient) MarkAllRead(ctx context.Context) error {
	_, err := nc.c.Post(ctx, "/notifications/read-all", nil)
	return err
}
