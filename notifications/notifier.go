// Package notifications delivers player alerts over the realtime hub.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/realtime"
)

type Kind string

const (
	KindTournamentCreated Kind = "tournament_created"
	KindReminder          Kind = "tournament_reminder"
	KindBadgeAwarded      Kind = "badge_awarded"
	KindProposalApproved  Kind = "proposal_approved"
)

type Notification struct {
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier доставляет уведомление каждому игроку из списка.
type Notifier interface {
	Notify(ctx context.Context, playerIDs []string, n Notification) error
}

type Broadcaster interface {
	BroadcastToRoom(roomID string, message realtime.Message)
}

type hubNotifier struct {
	hub    Broadcaster
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewHubNotifier(hub Broadcaster, clock clockwork.Clock, logger *slog.Logger) Notifier {
	return &hubNotifier{hub: hub, clock: clock, logger: logger}
}

func (n *hubNotifier) Notify(ctx context.Context, playerIDs []string, notification Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = n.clock.Now()
	}
	for _, id := range playerIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		n.hub.BroadcastToRoom(realtime.PlayerRoom(id), realtime.Message{
			Type:    realtime.MessageNotification,
			Payload: notification,
		})
	}
	n.logger.Info("notification sent",
		slog.String("kind", string(notification.Kind)),
		slog.Int("recipients", len(playerIDs)),
	)
	return nil
}
