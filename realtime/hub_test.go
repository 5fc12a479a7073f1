package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, r.URL.Query().Get("room"))
	}))
	defer srv.Close()

	dial := func(room string) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?room=" + room
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	room := TournamentRoom("42")
	inRoom := dial(room)
	other := dial(PlayerRoom("p1"))

	require.Eventually(t, func() bool {
		return hub.RoomSize(room) == 1 && hub.RoomSize(PlayerRoom("p1")) == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(room, Message{Type: MessageTournamentUpdated, Payload: map[string]string{"id": "42"}})

	inRoom.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := inRoom.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
		RoomID  string            `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageTournamentUpdated, msg.Type)
	assert.Equal(t, "42", msg.Payload["id"])
	assert.Equal(t, "tournament_42", msg.RoomID)

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err, "clients of other rooms receive nothing")

	inRoom.Close()
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NotPanics(t, func() {
		hub.BroadcastToRoom("nobody", Message{Type: MessageNotification})
	})
}
