package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type SchedulerConfig struct {
	BadgeInterval    time.Duration
	ReminderInterval time.Duration
}

// StartScheduler запускает периодические задачи: выдачу значков и напоминания
// о турнирах. Остановка через Shutdown возвращенного планировщика.
func StartScheduler(ctx context.Context, cfg SchedulerConfig, badges BadgeService, reminders ReminderService, logger *slog.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.BadgeInterval),
		gocron.NewTask(func() {
			awarded, err := badges.AwardBadges(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "badge job failed", slog.Any("error", err))
				return
			}
			logger.InfoContext(ctx, "badge job finished", slog.Int("awarded", awarded))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule badge job: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.ReminderInterval),
		gocron.NewTask(func() {
			sent, err := reminders.SendReminders(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "reminder job failed", slog.Any("error", err))
				return
			}
			logger.InfoContext(ctx, "reminder job finished", slog.Int("sent", sent))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	sched.Start()
	return sched, nil
}
