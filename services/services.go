package services

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/community-tournaments/integrations/discord"
	"github.com/Dosada05/community-tournaments/integrations/twitch"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/roster"
	"github.com/Dosada05/community-tournaments/storage"
)

// Dependencies содержит все внешние зависимости сервисного слоя. Uploader может быть nil.
type Dependencies struct {
	Store             *repositories.Store
	Discord           discord.Client
	Twitch            twitch.Client
	Notifier          notifications.Notifier
	Hub               Broadcaster
	Uploader          storage.FileUploader
	Clock             clockwork.Clock
	Rand              roster.Rand
	Logger            *slog.Logger
	AdminPasswordHash string
	JWTSecret         []byte
	ReminderLeadTime  time.Duration
}

type Services struct {
	Auth        AuthService
	Players     PlayerService
	Tournaments TournamentService
	Seasons     SeasonService
	Rankings    RankingService
	Games       GameService
	Proposals   ProposalService
	Badges      BadgeService
	Reminders   ReminderService
}

func New(deps Dependencies) *Services {
	tournaments := NewTournamentService(deps.Store, deps.Discord, deps.Notifier, deps.Hub, deps.Clock, deps.Rand, deps.Logger)
	return &Services{
		Auth:        NewAuthService(deps.Store.Players, deps.AdminPasswordHash, deps.JWTSecret, deps.Clock),
		Players:     NewPlayerService(deps.Store, tournaments, deps.Twitch, deps.Clock, deps.Logger),
		Tournaments: tournaments,
		Seasons:     NewSeasonService(deps.Store, deps.Clock, deps.Logger),
		Rankings:    NewRankingService(deps.Store, deps.Clock),
		Games:       NewGameService(deps.Store, deps.Uploader, deps.Clock, deps.Logger),
		Proposals:   NewProposalService(deps.Store, deps.Discord, deps.Notifier, deps.Uploader, deps.Clock, deps.Logger),
		Badges:      NewBadgeService(deps.Store, deps.Notifier, deps.Clock, deps.Logger),
		Reminders:   NewReminderService(deps.Store, deps.Notifier, deps.Clock, deps.ReminderLeadTime, deps.Logger),
	}
}
