package mocknotifier

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Dosada05/community-tournaments/notifications"
)

type Notifier struct {
	mock.Mock
}

func (n *Notifier) Notify(ctx context.Context, playerIDs []string, notification notifications.Notification) error {
	args := n.Called(ctx, playerIDs, notification)
	return args.Error(0)
}
