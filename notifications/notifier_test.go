package notifications

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/realtime"
)

type recordingHub struct {
	rooms    []string
	messages []realtime.Message
}

func (h *recordingHub) BroadcastToRoom(roomID string, message realtime.Message) {
	h.rooms = append(h.rooms, roomID)
	h.messages = append(h.messages, message)
}

func TestHubNotifier_Notify(t *testing.T) {
	now := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	hub := &recordingHub{}
	n := NewHubNotifier(hub, clockwork.NewFakeClockAt(now), slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := n.Notify(context.Background(), []string{"a", "b"}, Notification{Kind: KindReminder, Title: "Cup starts soon"})
	require.NoError(t, err)

	assert.Equal(t, []string{"player_a", "player_b"}, hub.rooms)
	require.Len(t, hub.messages, 2)
	assert.Equal(t, realtime.MessageNotification, hub.messages[0].Type)

	payload, ok := hub.messages[0].Payload.(Notification)
	require.True(t, ok)
	assert.Equal(t, now, payload.CreatedAt)
	assert.Equal(t, "Cup starts soon", payload.Title)
}

func TestHubNotifier_cancelledContext(t *testing.T) {
	hub := &recordingHub{}
	n := NewHubNotifier(hub, clockwork.NewFakeClock(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, []string{"a"}, Notification{Kind: KindReminder}), context.Canceled)
	assert.Empty(t, hub.rooms)
}
