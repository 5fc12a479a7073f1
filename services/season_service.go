package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/repositories"
)

type CreateSeasonInput struct {
	Numero int    `json:"numero"`
	Name   string `json:"name"`
}

type SeasonService interface {
	Create(ctx context.Context, input CreateSeasonInput) (*models.Season, error)
	GetByID(ctx context.Context, id string) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	Current(ctx context.Context) (*models.Season, error)
	AddTournament(ctx context.Context, seasonID, tournamentID string) (*models.Season, error)
	RemoveTournament(ctx context.Context, seasonID, tournamentID string) (*models.Season, error)
	Delete(ctx context.Context, id string) error
}

type seasonService struct {
	seasons     repositories.SeasonRepository
	tournaments repositories.TournamentRepository
	clock       clockwork.Clock
	logger      *slog.Logger
}

func NewSeasonService(store *repositories.Store, clock clockwork.Clock, logger *slog.Logger) SeasonService {
	return &seasonService{
		seasons:     store.Seasons,
		tournaments: store.Tournaments,
		clock:       clock,
		logger:      logger,
	}
}

func (s *seasonService) Create(ctx context.Context, input CreateSeasonInput) (*models.Season, error) {
	if input.Numero < 0 {
		return nil, models.ErrInvalidSeasonNum
	}
	season := &models.Season{
		ID:          uuid.NewString(),
		Numero:      input.Numero,
		Name:        strings.TrimSpace(input.Name),
		Tournaments: []string{},
		CreatedAt:   s.clock.Now(),
	}
	if err := s.seasons.Create(ctx, season); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	s.logger.InfoContext(ctx, "season created", slog.String("season_id", season.ID), slog.Int("numero", season.Numero))
	return season, nil
}

func (s *seasonService) GetByID(ctx context.Context, id string) (*models.Season, error) {
	return s.seasons.GetByID(ctx, id)
}

func (s *seasonService) List(ctx context.Context) ([]models.Season, error) {
	return s.seasons.List(ctx)
}

func (s *seasonService) Current(ctx context.Context) (*models.Season, error) {
	return s.seasons.GetCurrent(ctx)
}

// AddTournament привязывает турнир к сезону. Турнир может входить только в один сезон.
func (s *seasonService) AddTournament(ctx context.Context, seasonID, tournamentID string) (*models.Season, error) {
	if _, err := s.tournaments.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	owner, err := s.seasons.FindByTournament(ctx, tournamentID)
	switch {
	case err == nil:
		if owner.ID == seasonID {
			return owner, nil
		}
		return nil, models.ErrTournamentInSeason
	case !isNotFound(err):
		return nil, fmt.Errorf("failed to look up season of tournament: %w", err)
	}

	return updateDocument(ctx,
		func(ctx context.Context) (*models.Season, error) { return s.seasons.GetByID(ctx, seasonID) },
		func(season *models.Season) error {
			if season.Contains(tournamentID) {
				return errNoChange
			}
			season.Tournaments = append(season.Tournaments, tournamentID)
			return nil
		},
		s.seasons.Update,
	)
}

func (s *seasonService) RemoveTournament(ctx context.Context, seasonID, tournamentID string) (*models.Season, error) {
	return updateDocument(ctx,
		func(ctx context.Context) (*models.Season, error) { return s.seasons.GetByID(ctx, seasonID) },
		func(season *models.Season) error {
			if !season.Contains(tournamentID) {
				return models.ErrTournamentNotInSeason
			}
			season.Tournaments = removeID(season.Tournaments, tournamentID)
			return nil
		},
		s.seasons.Update,
	)
}

func (s *seasonService) Delete(ctx context.Context, id string) error {
	if err := s.seasons.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "season deleted", slog.String("season_id", id))
	return nil
}
