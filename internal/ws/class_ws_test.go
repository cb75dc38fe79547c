package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tgclasses/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		classID := uint(1)
		if r.URL.Query().Get("class") == "2" {
			classID = 2
		}
		hub.Serve(w, r, classID)
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversEventsToClassSubscribers(t *testing.T) {
	hub, srv := startHub(t)

	subscriber := dial(t, srv, "?class=1")
	other := dial(t, srv, "?class=2")
	require.Eventually(t, func() bool {
		return hub.ClientCount(1) == 1 && hub.ClientCount(2) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Notify(1, "rsvp_updated", map[string]string{"status": "yes"})

	subscriber.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event struct {
		EventType string            `json:"event_type"`
		ClassID   uint              `json:"class_id"`
		Data      map[string]string `json:"data"`
	}
	require.NoError(t, subscriber.ReadJSON(&event))
	assert.Equal(t, "rsvp_updated", event.EventType)
	assert.Equal(t, uint(1), event.ClassID)
	assert.Equal(t, "yes", event.Data["status"])

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "подписчик другого занятия не должен получать событие")
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv, "?class=1")
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotifyWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(logger.Discard())

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer+10; i++ {
			hub.Notify(7, "class_updated", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify заблокировался")
	}
}
