package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/repositories"
)

type ReminderService interface {
	// SendReminders notifies the players of every tournament starting within
	// the lead time. Each tournament is reminded at most once.
	SendReminders(ctx context.Context) (int, error)
}

type reminderService struct {
	tournaments repositories.TournamentRepository
	notifier    notifications.Notifier
	clock       clockwork.Clock
	leadTime    time.Duration
	logger      *slog.Logger
}

func NewReminderService(store *repositories.Store, notifier notifications.Notifier, clock clockwork.Clock, leadTime time.Duration, logger *slog.Logger) ReminderService {
	return &reminderService{
		tournaments: store.Tournaments,
		notifier:    notifier,
		clock:       clock,
		leadTime:    leadTime,
		logger:      logger,
	}
}

func (s *reminderService) SendReminders(ctx context.Context) (int, error) {
	now := s.clock.Now()
	until := now.Add(s.leadTime)
	unfinished := false

	upcoming, err := s.tournaments.List(ctx, repositories.ListTournamentsFilter{
		Finished: &unfinished,
		From:     &now,
		To:       &until,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming tournaments: %w", err)
	}

	sent := 0
	for i := range upcoming {
		if upcoming[i].ReminderSent {
			continue
		}
		id := upcoming[i].ID

		// Флаг сохраняется до отправки: при сбое уведомлений игрок не получит
		// напоминание повторно на следующем запуске.
		marked := false
		t, err := updateDocument(ctx,
			func(ctx context.Context) (*models.Tournament, error) { return s.tournaments.GetByID(ctx, id) },
			func(t *models.Tournament) error {
				if t.ReminderSent {
					marked = false
					return errNoChange
				}
				marked = true
				t.ReminderSent = true
				return nil
			},
			s.tournaments.Update,
		)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to mark reminder", slog.String("tournament_id", id), slog.Any("error", err))
			continue
		}
		if !marked || len(t.Players) == 0 {
			continue
		}

		err = s.notifier.Notify(ctx, t.Players, notifications.Notification{
			Kind:  notifications.KindReminder,
			Title: t.Name + " starts soon",
			Body:  "Starts at " + t.Date.Format(time.Kitchen) + ". Don't forget to check in.",
			URL:   "/tournaments/" + t.ID,
		})
		logCollaboratorError(ctx, s.logger, "notifications", "tournament reminder", err, slog.String("tournament_id", id))
		sent++
	}
	return sent, nil
}
