package client

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"servicehub/models"
)

// NotificationFeed keeps a live unread counter fed by the websocket stream.
// The counter is seeded from the server on every (re)connect, so a gap in
// the stream can only ever make it stale until the next connect, never
// wrong forever.
type NotificationFeed struct {
	client *Client

	// OnNotification, when set, fires for every pushed notification.
	OnNotification func(models.Notification)

	mu     sync.Mutex
	conn   *websocket.Conn
	unread int64
	closed bool
}

func NewNotificationFeed(c *Client) *NotificationFeed {
	return &NotificationFeed{client: c}
}

type feedEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Connect dials the websocket endpoint, seeds the unread counter and starts
// reading pushed events. It returns once the connection is established.
func (f *NotificationFeed) Connect(ctx context.Context) error {
	wsURL, err := f.socketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return &NetworkUnavailable{Err: err}
	}

	count, err := f.client.Notifications().UnreadCount(ctx)
	if err != nil {
		conn.Close()
		return err
	}

	f.mu.Lock()
	if f.conn != nil {
		// Drop the previous stream so its readLoop exits instead of
		// racing the new one.
		f.conn.Close()
	}
	f.conn = conn
	f.unread = count
	f.closed = false
	f.mu.Unlock()

	go f.readLoop(conn)
	return nil
}

func (f *NotificationFeed) socketURL() (string, error) {
	u, err := url.Parse(f.client.BaseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	q := u.Query()
	q.Set("token", f.client.Token())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (f *NotificationFeed) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			f.mu.Lock()
			closed := f.closed
			f.mu.Unlock()
			if !closed {
				log.Printf("notification stream dropped: %v", err)
			}
			return
		}

		var event feedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Printf("undecodable notification event: %v", err)
			continue
		}
		if event.Type != "notification" {
			continue
		}

		var notification models.Notification
		if err := json.Unmarshal(event.Data, &notification); err != nil {
			log.Printf("undecodable notification payload: %v", err)
			continue
		}
		f.AddNotification(notification)
	}
}

// AddNotification folds one notification into the counter. Already-read
// notifications pass through without touching it.
func (f *NotificationFeed) AddNotification(n models.Notification) {
	if !n.IsRead {
		f.mu.Lock()
		f.unread++
		f.mu.Unlock()
	}
	if f.OnNotification != nil {
		f.OnNotification(n)
	}
}

func (f *NotificationFeed) Unread() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// MarkAllRead clears every unread notification on the server and resets the
// local counter.
func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	if err := f.client.Notifications().MarkAllRead(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	f.unread = 0
	f.mu.Unlock()
	return nil
}

// Reconnect re-dials after a dropped stream with a capped backoff, seeding
// the counter again from the server once it gets through.
func (f *NotificationFeed) Reconnect(ctx context.Context, maxWait time.Duration) error {
	backoff := time.Second
	deadline := time.Now().Add(maxWait)
	for {
		err := f.Connect(ctx)
		if err == nil {
			return nil
		}
		if time.Now().Add(backoff).After(deadline) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 10*time.Second {
			backoff *= 2
		}
	}
}

// Close stops the stream. The counter keeps its last value.
func (f *NotificationFeed) Close() {
	f.mu.Lock()
	f.closed = true
	conn := f.conn
	f.conn = nil
	f.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}
