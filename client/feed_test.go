package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/models"
)

func TestNotificationFeedCountsPushes(t *testing.T) {
	upgrader := websocket.Upgrader{}
	push := make(chan models.Notification, 4)
	var gotToken string

	mux := http.NewServeMux()
	mux.HandleFunc("/notifications/count", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int64{"unread_count": 2})
	})
	mux.HandleFunc("/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for n := range push {
			payload, _ := json.Marshal(map[string]any{"type": "notification", "data": n})
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	defer close(push)

	c := New(srv.URL)
	c.SetToken("tok-7")

	received := make(chan models.Notification, 4)
	feed := NewNotificationFeed(c)
	feed.OnNotification = func(n models.Notification) { received <- n }

	require.NoError(t, feed.Connect(context.Background()))
	defer feed.Close()

	// Seeded from the server on connect.
	assert.Equal(t, int64(2), feed.Unread())
	assert.Equal(t, "tok-7", gotToken)

	push <- models.Notification{Message: "You received a quote", Type: models.NotificationQuote}
	select {
	case n := <-received:
		assert.Equal(t, "You received a quote", n.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("pushed notification never arrived")
	}
	assert.Equal(t, int64(3), feed.Unread())

	// Already-read pushes pass through without counting.
	push <- models.Notification{Message: "old news", IsRead: true}
	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("pushed notification never arrived")
	}
	assert.Equal(t, int64(3), feed.Unread())

	require.NoError(t, feed.MarkAllRead(context.Background()))
	assert.Equal(t, int64(0), feed.Unread())
}

func TestNotificationFeedConnectFailure(t *testing.T) {
	c := New("http://127.0.0.1:1")
	feed := NewNotificationFeed(c)

	err := feed.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkUnavailable(err))
	assert.Equal(t, int64(0), feed.Unread())
}
