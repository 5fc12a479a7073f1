package services

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/ranking"
	"github.com/Dosada05/community-tournaments/repositories"
)

type RankingInput struct {
	GameID   string
	SeasonID string
}

// RankingService пересчитывает рейтинги при каждом запросе, без кэша.
type RankingService interface {
	Players(ctx context.Context, input RankingInput) ([]ranking.PlayerRanking, error)
	Champions(ctx context.Context) ([]ranking.SeasonChampion, error)
	PlayerStats(ctx context.Context, playerID, gameID string) (*ranking.PlayerStats, error)
}

type rankingService struct {
	players     repositories.PlayerRepository
	tournaments repositories.TournamentRepository
	seasons     repositories.SeasonRepository
	clock       clockwork.Clock
}

func NewRankingService(store *repositories.Store, clock clockwork.Clock) RankingService {
	return &rankingService{
		players:     store.Players,
		tournaments: store.Tournaments,
		seasons:     store.Seasons,
		clock:       clock,
	}
}

func finishedOnly() *bool {
	finished := true
	return &finished
}

func (s *rankingService) Players(ctx context.Context, input RankingInput) ([]ranking.PlayerRanking, error) {
	var (
		players     []models.Player
		tournaments []models.Tournament
		season      *models.Season
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.players.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tournaments, err = s.tournaments.List(gCtx, repositories.ListTournamentsFilter{
			GameID:   input.GameID,
			Finished: finishedOnly(),
		})
		if err != nil {
			return fmt.Errorf("failed to list tournaments: %w", err)
		}
		return nil
	})
	if input.SeasonID != "" {
		g.Go(func() error {
			var err error
			season, err = s.seasons.GetByID(gCtx, input.SeasonID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ranking.Compute(tournaments, players, ranking.Scope{GameID: input.GameID, Season: season}), nil
}

func (s *rankingService) Champions(ctx context.Context) ([]ranking.SeasonChampion, error) {
	var (
		players     []models.Player
		tournaments []models.Tournament
		seasons     []models.Season
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.players.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		tournaments, err = s.tournaments.List(gCtx, repositories.ListTournamentsFilter{Finished: finishedOnly()})
		return err
	})
	g.Go(func() error {
		var err error
		seasons, err = s.seasons.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load season data: %w", err)
	}

	return ranking.SeasonChampions(seasons, tournaments, players), nil
}

func (s *rankingService) PlayerStats(ctx context.Context, playerID, gameID string) (*ranking.PlayerStats, error) {
	var tournaments []models.Tournament

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.players.GetByID(gCtx, playerID)
		return err
	})
	g.Go(func() error {
		var err error
		tournaments, err = s.tournaments.List(gCtx, repositories.ListTournamentsFilter{PlayerID: playerID})
		if err != nil {
			return fmt.Errorf("failed to list player tournaments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := ranking.Stats(playerID, tournaments, ranking.Scope{GameID: gameID}, s.clock.Now())
	return &stats, nil
}
