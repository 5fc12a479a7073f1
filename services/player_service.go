package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/integrations/twitch"
	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/voting"
)

const (
	minUsernameLength = 2
	maxUsernameLength = 32
)

type CreatePlayerInput struct {
	Username    string  `json:"username"`
	DiscordID   *string `json:"discord_id"`
	TwitchLogin *string `json:"twitch_login"`
	AvatarURL   *string `json:"avatar_url"`
	Level       string  `json:"level"`
}

// UpdatePlayerInput описывает частичное обновление профиля: nil означает "не менять",
// пустая строка очищает необязательное поле.
type UpdatePlayerInput struct {
	Username    *string `json:"username"`
	DiscordID   *string `json:"discord_id"`
	TwitchLogin *string `json:"twitch_login"`
	AvatarURL   *string `json:"avatar_url"`
	Level       *string `json:"level"`
}

type LiveStream struct {
	Player models.PlayerRef `json:"player"`
	Stream twitch.Stream    `json:"stream"`
}

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id string) error
	LiveStreams(ctx context.Context) ([]LiveStream, error)
}

type playerService struct {
	players     repositories.PlayerRepository
	tournaments repositories.TournamentRepository
	proposals   repositories.ProposalRepository
	tournament  TournamentService
	twitch      twitch.Client
	clock       clockwork.Clock
	logger      *slog.Logger
}

func NewPlayerService(
	store *repositories.Store,
	tournamentService TournamentService,
	twitchClient twitch.Client,
	clock clockwork.Clock,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		players:     store.Players,
		tournaments: store.Tournaments,
		proposals:   store.Proposals,
		tournament:  tournamentService,
		twitch:      twitchClient,
		clock:       clock,
		logger:      logger,
	}
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return "", models.ErrUsernameInvalid
	}
	return username, nil
}

func parseLevel(level string) (models.PlayerLevel, error) {
	if level == "" {
		return models.LevelNovice, nil
	}
	l := models.PlayerLevel(strings.ToLower(strings.TrimSpace(level)))
	if !l.Valid() {
		return "", models.ErrInvalidLevel
	}
	return l, nil
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	username, err := validateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	level, err := parseLevel(input.Level)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &models.Player{
		ID:          uuid.NewString(),
		Username:    username,
		DiscordID:   optionalString(input.DiscordID),
		TwitchLogin: optionalString(input.TwitchLogin),
		AvatarURL:   optionalString(input.AvatarURL),
		Level:       level,
		Badges:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.players.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	s.logger.InfoContext(ctx, "player created", slog.String("player_id", player.ID))
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	return s.players.GetByID(ctx, id)
}

func (s *playerService) GetByDiscordID(ctx context.Context, discordID string) (*models.Player, error) {
	return s.players.GetByDiscordID(ctx, discordID)
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	return s.players.List(ctx)
}

func (s *playerService) Update(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error) {
	var username string
	if input.Username != nil {
		var err error
		if username, err = validateUsername(*input.Username); err != nil {
			return nil, err
		}
	}
	var level models.PlayerLevel
	if input.Level != nil {
		var err error
		if level, err = parseLevel(*input.Level); err != nil {
			return nil, err
		}
	}

	return updateDocument(ctx,
		func(ctx context.Context) (*models.Player, error) { return s.players.GetByID(ctx, id) },
		func(p *models.Player) error {
			if input.Username != nil {
				p.Username = username
			}
			if input.Level != nil {
				p.Level = level
			}
			if input.DiscordID != nil {
				p.DiscordID = optionalString(input.DiscordID)
			}
			if input.TwitchLogin != nil {
				p.TwitchLogin = optionalString(input.TwitchLogin)
			}
			if input.AvatarURL != nil {
				p.AvatarURL = optionalString(input.AvatarURL)
			}
			p.UpdatedAt = s.clock.Now()
			return nil
		},
		s.players.Update,
	)
}

// Delete снимает игрока со всех турниров и отзывает его голоса, после чего
// удаляет документ. При ошибке каскада игрок остается, и удаление можно повторить.
func (s *playerService) Delete(ctx context.Context, id string) error {
	if _, err := s.players.GetByID(ctx, id); err != nil {
		return err
	}

	tournaments, err := s.tournaments.List(ctx, repositories.ListTournamentsFilter{PlayerID: id})
	if err != nil {
		return fmt.Errorf("failed to list player tournaments: %w", err)
	}
	for i := range tournaments {
		if _, err := s.tournament.Unregister(ctx, tournaments[i].ID, id); err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to unregister player from tournament %s: %w", tournaments[i].ID, err)
		}
	}

	proposals, err := s.proposals.List(ctx, repositories.ListProposalsFilter{})
	if err != nil {
		return fmt.Errorf("failed to list proposals: %w", err)
	}
	for i := range proposals {
		if voting.VoteOf(&proposals[i], id) == 0 {
			continue
		}
		proposalID := proposals[i].ID
		_, err := updateDocument(ctx,
			func(ctx context.Context) (*models.GameProposal, error) { return s.proposals.GetByID(ctx, proposalID) },
			func(p *models.GameProposal) error {
				if err := voting.Cast(p, id, 0); err != nil {
					return err
				}
				p.UpdatedAt = s.clock.Now()
				return nil
			},
			s.proposals.Update,
		)
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to withdraw vote on proposal %s: %w", proposalID, err)
		}
	}

	if err := s.players.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	s.logger.InfoContext(ctx, "player deleted",
		slog.String("player_id", id),
		slog.Int("tournaments", len(tournaments)),
	)
	return nil
}

// LiveStreams возвращает игроков, которые сейчас в эфире на Twitch. Сбой Twitch
// не считается ошибкой: результат просто пустой.
func (s *playerService) LiveStreams(ctx context.Context) ([]LiveStream, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	byLogin := make(map[string]models.PlayerRef)
	logins := make([]string, 0)
	for i := range players {
		login := strings.ToLower(derefString(players[i].TwitchLogin))
		if login == "" {
			continue
		}
		if _, ok := byLogin[login]; !ok {
			logins = append(logins, login)
		}
		byLogin[login] = players[i].Ref()
	}

	live := make([]LiveStream, 0)
	if len(logins) == 0 {
		return live, nil
	}

	streams, err := s.twitch.LiveStreams(ctx, logins)
	if err != nil {
		logCollaboratorError(ctx, s.logger, "twitch", "live streams", err, slog.Int("logins", len(logins)))
		return live, nil
	}
	for _, stream := range streams {
		ref, ok := byLogin[strings.ToLower(stream.UserLogin)]
		if !ok {
			continue
		}
		live = append(live, LiveStream{Player: ref, Stream: stream})
	}
	return live, nil
}
