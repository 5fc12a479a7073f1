package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/notifications"
)

func TestReminderService_SendReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	game := f.game(t, "League of Legends")
	a, b := f.player(t, "alice"), f.player(t, "bob")

	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.MatchedBy(func(n notifications.Notification) bool {
		return n.Kind == notifications.KindTournamentCreated
	})).Return(nil)
	f.notifier.On("Notify", mock.Anything, []string{a.ID, b.ID}, mock.MatchedBy(func(n notifications.Notification) bool {
		return n.Kind == notifications.KindReminder
	})).Return(nil).Once()

	soon := f.tournament(t, game.ID, testNow.Add(30*time.Minute), a.ID, b.ID)
	f.tournament(t, game.ID, testNow.Add(3*time.Hour), a.ID)
	f.tournament(t, game.ID, testNow.Add(-time.Hour), b.ID)
	f.tournament(t, game.ID, testNow.Add(45*time.Minute))

	sent, err := f.svc.Reminders.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	stored, err := f.store.Tournaments.GetByID(ctx, soon.ID)
	require.NoError(t, err)
	assert.True(t, stored.ReminderSent)

	sent, err = f.svc.Reminders.SendReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent, "a tournament is reminded once")

	f.clock.Advance(2*time.Hour + 30*time.Minute)
	f.notifier.On("Notify", mock.Anything, []string{a.ID}, mock.Anything).Return(nil).Once()
	sent, err = f.svc.Reminders.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}
