package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/ranking"
	"github.com/Dosada05/community-tournaments/repositories"
)

type CreateBadgeInput struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	ImageURL    *string               `json:"image_url"`
	Criterion   models.BadgeCriterion `json:"criterion"`
	Threshold   int                   `json:"threshold"`
}

type BadgeService interface {
	Create(ctx context.Context, input CreateBadgeInput) (*models.Badge, error)
	GetByID(ctx context.Context, id string) (*models.Badge, error)
	List(ctx context.Context) ([]models.Badge, error)
	Delete(ctx context.Context, id string) error
	Grant(ctx context.Context, badgeID, playerID string) (*models.Player, error)
	Revoke(ctx context.Context, badgeID, playerID string) (*models.Player, error)

	// AwardBadges grants every badge whose threshold a player reached and
	// returns how many were granted. Running it twice grants nothing new.
	AwardBadges(ctx context.Context) (int, error)
}

type badgeService struct {
	badges      repositories.BadgeRepository
	players     repositories.PlayerRepository
	tournaments repositories.TournamentRepository
	seasons     repositories.SeasonRepository
	notifier    notifications.Notifier
	clock       clockwork.Clock
	logger      *slog.Logger
}

func NewBadgeService(store *repositories.Store, notifier notifications.Notifier, clock clockwork.Clock, logger *slog.Logger) BadgeService {
	return &badgeService{
		badges:      store.Badges,
		players:     store.Players,
		tournaments: store.Tournaments,
		seasons:     store.Seasons,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

func (s *badgeService) Create(ctx context.Context, input CreateBadgeInput) (*models.Badge, error) {
	name := strings.TrimSpace(input.Name)
	key := slug.Make(name)
	if key == "" {
		return nil, models.ErrNameRequired
	}
	if !input.Criterion.Valid() {
		return nil, models.ErrInvalidCriterion
	}
	if input.Threshold < 1 {
		return nil, models.ErrInvalidThreshold
	}

	badge := &models.Badge{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        key,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    optionalString(input.ImageURL),
		Criterion:   input.Criterion,
		Threshold:   input.Threshold,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.badges.Create(ctx, badge); err != nil {
		return nil, fmt.Errorf("failed to create badge: %w", err)
	}
	return badge, nil
}

func (s *badgeService) GetByID(ctx context.Context, id string) (*models.Badge, error) {
	return s.badges.GetByID(ctx, id)
}

func (s *badgeService) List(ctx context.Context) ([]models.Badge, error) {
	return s.badges.List(ctx)
}

// Delete сначала снимает значок со всех игроков, затем удаляет сам значок.
func (s *badgeService) Delete(ctx context.Context, id string) error {
	if _, err := s.badges.GetByID(ctx, id); err != nil {
		return err
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		if !players[i].HasBadge(id) {
			continue
		}
		if _, err := s.Revoke(ctx, id, players[i].ID); err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to revoke badge from player %s: %w", players[i].ID, err)
		}
	}
	return s.badges.Delete(ctx, id)
}

func (s *badgeService) Grant(ctx context.Context, badgeID, playerID string) (*models.Player, error) {
	badge, err := s.badges.GetByID(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	player, granted, err := s.grant(ctx, badge, playerID)
	if err != nil {
		return nil, err
	}
	if granted {
		s.notifyAwarded(ctx, badge, playerID)
	}
	return player, nil
}

// grant добавляет значок игроку, если его еще нет. Проверка выполняется внутри
// read-modify-write, поэтому повторная выдача невозможна.
func (s *badgeService) grant(ctx context.Context, badge *models.Badge, playerID string) (*models.Player, bool, error) {
	granted := false
	player, err := updateDocument(ctx,
		func(ctx context.Context) (*models.Player, error) { return s.players.GetByID(ctx, playerID) },
		func(p *models.Player) error {
			if p.HasBadge(badge.ID) {
				granted = false
				return errNoChange
			}
			granted = true
			p.Badges = append(p.Badges, badge.ID)
			p.UpdatedAt = s.clock.Now()
			return nil
		},
		s.players.Update,
	)
	if err != nil {
		return nil, false, err
	}
	return player, granted, nil
}

func (s *badgeService) Revoke(ctx context.Context, badgeID, playerID string) (*models.Player, error) {
	return updateDocument(ctx,
		func(ctx context.Context) (*models.Player, error) { return s.players.GetByID(ctx, playerID) },
		func(p *models.Player) error {
			if !p.HasBadge(badgeID) {
				return errNoChange
			}
			p.Badges = removeID(p.Badges, badgeID)
			p.UpdatedAt = s.clock.Now()
			return nil
		},
		s.players.Update,
	)
}

func (s *badgeService) notifyAwarded(ctx context.Context, badge *models.Badge, playerID string) {
	err := s.notifier.Notify(ctx, []string{playerID}, notifications.Notification{
		Kind:  notifications.KindBadgeAwarded,
		Title: "New badge: " + badge.Name,
		Body:  badge.Description,
		URL:   "/players/" + playerID,
	})
	logCollaboratorError(ctx, s.logger, "notifications", "badge awarded", err,
		slog.String("badge_id", badge.ID),
		slog.String("player_id", playerID),
	)
}

func (s *badgeService) AwardBadges(ctx context.Context) (int, error) {
	var (
		badges      []models.Badge
		players     []models.Player
		tournaments []models.Tournament
		seasons     []models.Season
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		badges, err = s.badges.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.players.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		tournaments, err = s.tournaments.List(gCtx, repositories.ListTournamentsFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		seasons, err = s.seasons.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("failed to load badge data: %w", err)
	}
	if len(badges) == 0 {
		return 0, nil
	}

	championships := ranking.ChampionshipCounts(ranking.SeasonChampions(seasons, tournaments, players))
	now := s.clock.Now()

	awarded := 0
	for i := range players {
		stats := ranking.Stats(players[i].ID, tournaments, ranking.Scope{}, now)
		for j := range badges {
			badge := &badges[j]
			if players[i].HasBadge(badge.ID) {
				continue
			}
			if criterionValue(badge.Criterion, &stats, championships[players[i].ID]) < badge.Threshold {
				continue
			}
			_, granted, err := s.grant(ctx, badge, players[i].ID)
			if err != nil {
				s.logger.WarnContext(ctx, "failed to award badge",
					slog.String("badge_id", badge.ID),
					slog.String("player_id", players[i].ID),
					slog.Any("error", err),
				)
				continue
			}
			if granted {
				awarded++
				s.notifyAwarded(ctx, badge, players[i].ID)
			}
		}
	}
	return awarded, nil
}

func criterionValue(c models.BadgeCriterion, stats *ranking.PlayerStats, championships int) int {
	switch c {
	case models.CriterionTournamentsPlayed:
		return stats.TotalTournaments
	case models.CriterionTournamentWins:
		return stats.TotalVictories
	case models.CriterionWinStreak:
		return stats.LongestWinStreak
	case models.CriterionSeasonChampion:
		return championships
	}
	return 0
}
