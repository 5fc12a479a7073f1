package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/integrations/discord"
	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/realtime"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/roster"
)

// Broadcaster публикует сообщения в комнаты realtime-хаба.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message realtime.Message)
}

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	GameID      string    `json:"game_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Players     []string  `json:"players"`
}

type ListTournamentsInput struct {
	GameID   string
	SeasonID string
	PlayerID string
	Finished *bool
}

type GenerateTeamsInput struct {
	NumTeams  int      `json:"num_teams"`
	TeamNames []string `json:"team_names"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*TournamentView, error)
	GetByID(ctx context.Context, id string) (*TournamentView, error)
	List(ctx context.Context, input ListTournamentsInput) ([]TournamentView, error)
	Delete(ctx context.Context, id string) error

	Register(ctx context.Context, tournamentID, playerID string) (*TournamentView, error)
	Unregister(ctx context.Context, tournamentID, playerID string) (*TournamentView, error)
	SetCheckIn(ctx context.Context, tournamentID, playerID string, checkedIn bool) (*TournamentView, error)
	UpdatePlayers(ctx context.Context, tournamentID string, playerIDs []string) (*TournamentView, error)

	GenerateTeams(ctx context.Context, tournamentID string, input GenerateTeamsInput) (*TournamentView, error)
	DeleteTeamChannels(ctx context.Context, tournamentID string) (*TournamentView, error)
	UpdateTeamRanking(ctx context.Context, tournamentID, teamID string, ranking int) (*TournamentView, error)
	UpdateTeamScore(ctx context.Context, tournamentID, teamID string, score int) (*TournamentView, error)

	// MarkFinished requires at least one ranked team; Finish does not.
	MarkFinished(ctx context.Context, tournamentID string) (*TournamentView, error)
	Finish(ctx context.Context, tournamentID string) (*TournamentView, error)
	Unfinish(ctx context.Context, tournamentID string) (*TournamentView, error)
}

type tournamentService struct {
	tournaments repositories.TournamentRepository
	players     repositories.PlayerRepository
	games       repositories.GameRepository
	seasons     repositories.SeasonRepository
	discord     discord.Client
	notifier    notifications.Notifier
	hub         Broadcaster
	clock       clockwork.Clock
	rng         roster.Rand
	logger      *slog.Logger
}

func NewTournamentService(
	store *repositories.Store,
	discordClient discord.Client,
	notifier notifications.Notifier,
	hub Broadcaster,
	clock clockwork.Clock,
	rng roster.Rand,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournaments: store.Tournaments,
		players:     store.Players,
		games:       store.Games,
		seasons:     store.Seasons,
		discord:     discordClient,
		notifier:    notifier,
		hub:         hub,
		clock:       clock,
		rng:         rng,
		logger:      logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*TournamentView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, models.ErrNameRequired
	}
	if input.GameID == "" || input.Date.IsZero() {
		return nil, models.ErrInvalidTournament
	}
	if _, err := s.games.GetByID(ctx, input.GameID); err != nil {
		return nil, err
	}

	playerIDs := uniqueIDs(input.Players)
	if err := s.ensurePlayersExist(ctx, playerIDs); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	t := &models.Tournament{
		ID:                uuid.NewString(),
		Name:              name,
		GameID:            input.GameID,
		Description:       strings.TrimSpace(input.Description),
		Date:              input.Date.UTC(),
		Players:           []string{},
		Teams:             []models.Team{},
		CheckIns:          map[string]bool{},
		RegistrationDates: map[string]time.Time{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, id := range playerIDs {
		roster.Register(t, id, now)
	}

	if err := s.tournaments.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament created", slog.String("tournament_id", t.ID), slog.Int("players", len(t.Players)))

	s.announce(ctx, t)
	return s.view(ctx, t), nil
}

// announce сообщает всем игрокам сообщества о новом турнире.
func (s *tournamentService) announce(ctx context.Context, t *models.Tournament) {
	players, err := s.players.List(ctx)
	if err != nil {
		logCollaboratorError(ctx, s.logger, "notifications", "list recipients", err, slog.String("tournament_id", t.ID))
		return
	}
	ids := make([]string, 0, len(players))
	for i := range players {
		ids = append(ids, players[i].ID)
	}
	err = s.notifier.Notify(ctx, ids, notifications.Notification{
		Kind:  notifications.KindTournamentCreated,
		Title: "New tournament: " + t.Name,
		Body:  "Starts " + t.Date.Format(time.RFC1123),
		URL:   "/tournaments/" + t.ID,
	})
	logCollaboratorError(ctx, s.logger, "notifications", "tournament created", err, slog.String("tournament_id", t.ID))
}

func (s *tournamentService) ensurePlayersExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.players.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	if len(found) != len(ids) {
		known := make(map[string]bool, len(found))
		for i := range found {
			known[found[i].ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				return fmt.Errorf("%s: %w", id, models.ErrPlayerNotFound)
			}
		}
	}
	return nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*TournamentView, error) {
	t, err := s.tournaments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, t), nil
}

func (s *tournamentService) List(ctx context.Context, input ListTournamentsInput) ([]TournamentView, error) {
	filter := repositories.ListTournamentsFilter{
		GameID:   input.GameID,
		PlayerID: input.PlayerID,
		Finished: input.Finished,
	}
	if input.SeasonID != "" {
		season, err := s.seasons.GetByID(ctx, input.SeasonID)
		if err != nil {
			return nil, err
		}
		filter.IDs = append([]string{}, season.Tournaments...)
	}

	tournaments, err := s.tournaments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	var ids []string
	for i := range tournaments {
		ids = append(ids, tournaments[i].Players...)
	}
	refs, err := loadPlayerRefs(ctx, s.players, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	views := make([]TournamentView, 0, len(tournaments))
	for i := range tournaments {
		views = append(views, newTournamentView(&tournaments[i], refs))
	}
	return views, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	t, err := s.tournaments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tournaments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id))

	// Турнир больше не существует, поэтому ссылку из сезона тоже убираем.
	_, err = updateDocument(ctx,
		func(ctx context.Context) (*models.Season, error) { return s.seasons.FindByTournament(ctx, id) },
		func(season *models.Season) error {
			season.Tournaments = removeID(season.Tournaments, id)
			return nil
		},
		s.seasons.Update,
	)
	if err != nil && !isNotFound(err) {
		s.logger.WarnContext(ctx, "failed to detach deleted tournament from season", slog.String("tournament_id", id), slog.Any("error", err))
	}

	if len(t.DiscordChannelIDs) > 0 {
		err := s.discord.DeleteChannels(ctx, t.DiscordChannelIDs)
		logCollaboratorError(ctx, s.logger, "discord", "delete team channels", err, slog.String("tournament_id", id))
	}
	return nil
}

func (s *tournamentService) Register(ctx context.Context, tournamentID, playerID string) (*TournamentView, error) {
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		if !roster.Register(t, playerID, s.clock.Now()) {
			return errNoChange
		}
		return nil
	})
}

func (s *tournamentService) Unregister(ctx context.Context, tournamentID, playerID string) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		if !roster.Unregister(t, playerID) {
			return errNoChange
		}
		return nil
	})
}

func (s *tournamentService) SetCheckIn(ctx context.Context, tournamentID, playerID string, checkedIn bool) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		return roster.SetCheckIn(t, playerID, checkedIn)
	})
}

func (s *tournamentService) UpdatePlayers(ctx context.Context, tournamentID string, playerIDs []string) (*TournamentView, error) {
	playerIDs = uniqueIDs(playerIDs)
	if err := s.ensurePlayersExist(ctx, playerIDs); err != nil {
		return nil, err
	}
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		added, removed := roster.UpdatePlayers(t, playerIDs, s.clock.Now())
		if len(added) == 0 && len(removed) == 0 {
			return errNoChange
		}
		return nil
	})
}

func (s *tournamentService) GenerateTeams(ctx context.Context, tournamentID string, input GenerateTeamsInput) (*TournamentView, error) {
	var (
		oldChannels []string
		teamNames   []string
	)
	view, err := s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		if err := roster.GenerateTeams(t, input.NumTeams, input.TeamNames, s.rng); err != nil {
			return err
		}
		oldChannels = t.DiscordChannelIDs
		t.DiscordChannelIDs = nil
		teamNames = teamNames[:0]
		for _, team := range t.Teams {
			teamNames = append(teamNames, team.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(oldChannels) > 0 {
		err := s.discord.DeleteChannels(ctx, oldChannels)
		logCollaboratorError(ctx, s.logger, "discord", "delete team channels", err, slog.String("tournament_id", tournamentID))
	}
	channelIDs, err := s.discord.CreateVoiceChannels(ctx, teamNames)
	logCollaboratorError(ctx, s.logger, "discord", "create team channels", err, slog.String("tournament_id", tournamentID))
	if len(channelIDs) == 0 {
		return view, nil
	}

	withChannels, err := s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		t.DiscordChannelIDs = channelIDs
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to store team channel ids", slog.String("tournament_id", tournamentID), slog.Any("error", err))
		return view, nil
	}
	return withChannels, nil
}

func (s *tournamentService) DeleteTeamChannels(ctx context.Context, tournamentID string) (*TournamentView, error) {
	t, err := s.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(t.DiscordChannelIDs) == 0 {
		return s.view(ctx, t), nil
	}
	err = s.discord.DeleteChannels(ctx, t.DiscordChannelIDs)
	logCollaboratorError(ctx, s.logger, "discord", "delete team channels", err, slog.String("tournament_id", tournamentID))

	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		t.DiscordChannelIDs = nil
		return nil
	})
}

func (s *tournamentService) UpdateTeamRanking(ctx context.Context, tournamentID, teamID string, ranking int) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		return roster.SetTeamRanking(t, teamID, ranking)
	})
}

func (s *tournamentService) UpdateTeamScore(ctx context.Context, tournamentID, teamID string, score int) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		return roster.SetTeamScore(t, teamID, score)
	})
}

func (s *tournamentService) MarkFinished(ctx context.Context, tournamentID string) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, roster.MarkFinished)
}

func (s *tournamentService) Finish(ctx context.Context, tournamentID string) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		roster.ForceFinish(t)
		return nil
	})
}

func (s *tournamentService) Unfinish(ctx context.Context, tournamentID string) (*TournamentView, error) {
	return s.mutate(ctx, tournamentID, func(t *models.Tournament) error {
		roster.Unfinish(t)
		return nil
	})
}

// mutate применяет изменение к свежей копии турнира, сохраняет ее целиком и
// рассылает обновленное представление подписчикам комнаты турнира.
func (s *tournamentService) mutate(ctx context.Context, id string, fn func(t *models.Tournament) error) (*TournamentView, error) {
	changed := true
	t, err := updateDocument(ctx,
		func(ctx context.Context) (*models.Tournament, error) { return s.tournaments.GetByID(ctx, id) },
		func(t *models.Tournament) error {
			if err := fn(t); err != nil {
				changed = false
				return err
			}
			changed = true
			t.UpdatedAt = s.clock.Now()
			return nil
		},
		s.tournaments.Update,
	)
	if err != nil {
		return nil, err
	}

	view := s.view(ctx, t)
	if changed {
		s.hub.BroadcastToRoom(realtime.TournamentRoom(id), realtime.Message{
			Type:    realtime.MessageTournamentUpdated,
			Payload: view,
		})
	}
	return view, nil
}

// view строит представление турнира. Если игроков загрузить не удалось,
// ссылки содержат только идентификаторы.
func (s *tournamentService) view(ctx context.Context, t *models.Tournament) *TournamentView {
	refs, err := loadPlayerRefs(ctx, s.players, t.Players)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to populate tournament players", slog.String("tournament_id", t.ID), slog.Any("error", err))
		refs = map[string]models.PlayerRef{}
	}
	v := newTournamentView(t, refs)
	return &v
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
