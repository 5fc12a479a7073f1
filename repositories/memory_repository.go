package repositories

import (
	"context"
	"sort"

	"github.com/Dosada05/community-tournaments/models"
)

// In-memory implementations. They back the tests and STORE_DRIVER=memory and
// follow the ordering and error semantics of the Postgres repositories.

type memoryPlayerRepository struct {
	players *memoryCollection[models.Player]
}

func NewMemoryPlayerRepository() PlayerRepository {
	return &memoryPlayerRepository{players: newMemoryCollection(
		func(p *models.Player) string { return p.ID },
		func(p *models.Player) *int { return &p.Version },
		func(p *models.Player) *models.Player {
			c := *p
			c.Badges = append([]string(nil), p.Badges...)
			c.DiscordID = cloneString(p.DiscordID)
			c.TwitchLogin = cloneString(p.TwitchLogin)
			c.ExternalAccountID = cloneString(p.ExternalAccountID)
			c.AvatarURL = cloneString(p.AvatarURL)
			return &c
		},
	)}
}

func uniqueUsername(existing, p *models.Player) error {
	if models.UsernameKey(existing.Username) == models.UsernameKey(p.Username) {
		return models.ErrUsernameTaken
	}
	return nil
}

func (r *memoryPlayerRepository) Create(_ context.Context, p *models.Player) error {
	return r.players.insert(p, uniqueUsername)
}

func (r *memoryPlayerRepository) GetByID(_ context.Context, id string) (*models.Player, error) {
	if p, ok := r.players.get(id); ok {
		return p, nil
	}
	return nil, models.ErrPlayerNotFound
}

func (r *memoryPlayerRepository) GetByUsername(_ context.Context, username string) (*models.Player, error) {
	key := models.UsernameKey(username)
	if p, ok := r.players.find(func(p *models.Player) bool { return models.UsernameKey(p.Username) == key }); ok {
		return p, nil
	}
	return nil, models.ErrPlayerNotFound
}

func (r *memoryPlayerRepository) GetByDiscordID(_ context.Context, discordID string) (*models.Player, error) {
	if p, ok := r.players.find(func(p *models.Player) bool { return p.DiscordID != nil && *p.DiscordID == discordID }); ok {
		return p, nil
	}
	return nil, models.ErrPlayerNotFound
}

func (r *memoryPlayerRepository) List(_ context.Context) ([]models.Player, error) {
	return r.players.filter(nil), nil
}

func (r *memoryPlayerRepository) ListByIDs(_ context.Context, ids []string) ([]models.Player, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return r.players.filter(func(p *models.Player) bool {
		_, ok := set[p.ID]
		return ok
	}), nil
}

func (r *memoryPlayerRepository) Update(_ context.Context, p *models.Player) error {
	return r.players.update(p, models.ErrPlayerNotFound, uniqueUsername)
}

func (r *memoryPlayerRepository) Delete(_ context.Context, id string) error {
	return r.players.remove(id, models.ErrPlayerNotFound)
}

type memoryTournamentRepository struct {
	tournaments *memoryCollection[models.Tournament]
}

func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{tournaments: newMemoryCollection(
		func(t *models.Tournament) string { return t.ID },
		func(t *models.Tournament) *int { return &t.Version },
		(*models.Tournament).Clone,
	)}
}

func (r *memoryTournamentRepository) Create(_ context.Context, t *models.Tournament) error {
	return r.tournaments.insert(t, nil)
}

func (r *memoryTournamentRepository) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	if t, ok := r.tournaments.get(id); ok {
		return t, nil
	}
	return nil, models.ErrTournamentNotFound
}

func (r *memoryTournamentRepository) List(_ context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	var ids map[string]struct{}
	if filter.IDs != nil {
		ids = make(map[string]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = struct{}{}
		}
	}
	out := r.tournaments.filter(func(t *models.Tournament) bool {
		if filter.GameID != "" && t.GameID != filter.GameID {
			return false
		}
		if filter.Finished != nil && t.Finished != *filter.Finished {
			return false
		}
		if ids != nil {
			if _, ok := ids[t.ID]; !ok {
				return false
			}
		}
		if filter.PlayerID != "" && !t.HasPlayer(filter.PlayerID) {
			return false
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memoryTournamentRepository) Update(_ context.Context, t *models.Tournament) error {
	return r.tournaments.update(t, models.ErrTournamentNotFound, nil)
}

func (r *memoryTournamentRepository) Delete(_ context.Context, id string) error {
	return r.tournaments.remove(id, models.ErrTournamentNotFound)
}

type memorySeasonRepository struct {
	seasons *memoryCollection[models.Season]
}

func NewMemorySeasonRepository() SeasonRepository {
	return &memorySeasonRepository{seasons: newMemoryCollection(
		func(s *models.Season) string { return s.ID },
		func(s *models.Season) *int { return &s.Version },
		func(s *models.Season) *models.Season {
			c := *s
			c.Tournaments = append([]string(nil), s.Tournaments...)
			return &c
		},
	)}
}

func uniqueNumero(existing, s *models.Season) error {
	if existing.Numero == s.Numero {
		return models.ErrSeasonNumeroTaken
	}
	return nil
}

func (r *memorySeasonRepository) Create(_ context.Context, s *models.Season) error {
	return r.seasons.insert(s, uniqueNumero)
}

func (r *memorySeasonRepository) GetByID(_ context.Context, id string) (*models.Season, error) {
	if s, ok := r.seasons.get(id); ok {
		return s, nil
	}
	return nil, models.ErrSeasonNotFound
}

func (r *memorySeasonRepository) GetByNumero(_ context.Context, numero int) (*models.Season, error) {
	if s, ok := r.seasons.find(func(s *models.Season) bool { return s.Numero == numero }); ok {
		return s, nil
	}
	return nil, models.ErrSeasonNotFound
}

func (r *memorySeasonRepository) GetCurrent(ctx context.Context) (*models.Season, error) {
	seasons, _ := r.List(ctx)
	if len(seasons) == 0 {
		return nil, models.ErrSeasonNotFound
	}
	return &seasons[len(seasons)-1], nil
}

func (r *memorySeasonRepository) FindByTournament(_ context.Context, tournamentID string) (*models.Season, error) {
	if s, ok := r.seasons.find(func(s *models.Season) bool { return s.Contains(tournamentID) }); ok {
		return s, nil
	}
	return nil, models.ErrSeasonNotFound
}

func (r *memorySeasonRepository) List(_ context.Context) ([]models.Season, error) {
	out := r.seasons.filter(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *memorySeasonRepository) Update(_ context.Context, s *models.Season) error {
	return r.seasons.update(s, models.ErrSeasonNotFound, uniqueNumero)
}

func (r *memorySeasonRepository) Delete(_ context.Context, id string) error {
	return r.seasons.remove(id, models.ErrSeasonNotFound)
}

type memoryGameRepository struct {
	games *memoryCollection[models.Game]
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGameRepository{games: newMemoryCollection(
		func(g *models.Game) string { return g.ID },
		func(g *models.Game) *int { return &g.Version },
		func(g *models.Game) *models.Game {
			c := *g
			c.ImageURL = cloneString(g.ImageURL)
			return &c
		},
	)}
}

func uniqueGameSlug(existing, g *models.Game) error {
	if existing.Slug == g.Slug {
		return models.ErrGameNameTaken
	}
	return nil
}

func (r *memoryGameRepository) Create(_ context.Context, g *models.Game) error {
	return r.games.insert(g, uniqueGameSlug)
}

func (r *memoryGameRepository) GetByID(_ context.Context, id string) (*models.Game, error) {
	if g, ok := r.games.get(id); ok {
		return g, nil
	}
	return nil, models.ErrGameNotFound
}

func (r *memoryGameRepository) GetBySlug(_ context.Context, slug string) (*models.Game, error) {
	if g, ok := r.games.find(func(g *models.Game) bool { return g.Slug == slug }); ok {
		return g, nil
	}
	return nil, models.ErrGameNotFound
}

func (r *memoryGameRepository) List(_ context.Context) ([]models.Game, error) {
	out := r.games.filter(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryGameRepository) Update(_ context.Context, g *models.Game) error {
	return r.games.update(g, models.ErrGameNotFound, uniqueGameSlug)
}

func (r *memoryGameRepository) Delete(_ context.Context, id string) error {
	return r.games.remove(id, models.ErrGameNotFound)
}

type memoryProposalRepository struct {
	proposals *memoryCollection[models.GameProposal]
}

func NewMemoryProposalRepository() ProposalRepository {
	return &memoryProposalRepository{proposals: newMemoryCollection(
		func(p *models.GameProposal) string { return p.ID },
		func(p *models.GameProposal) *int { return &p.Version },
		func(p *models.GameProposal) *models.GameProposal {
			c := *p
			c.Votes = append([]models.Vote(nil), p.Votes...)
			c.ImageURL = cloneString(p.ImageURL)
			c.DiscordMessageID = cloneString(p.DiscordMessageID)
			return &c
		},
	)}
}

func (r *memoryProposalRepository) Create(_ context.Context, p *models.GameProposal) error {
	return r.proposals.insert(p, nil)
}

func (r *memoryProposalRepository) GetByID(_ context.Context, id string) (*models.GameProposal, error) {
	if p, ok := r.proposals.get(id); ok {
		return p, nil
	}
	return nil, models.ErrProposalNotFound
}

func (r *memoryProposalRepository) List(_ context.Context, filter ListProposalsFilter) ([]models.GameProposal, error) {
	out := r.proposals.filter(func(p *models.GameProposal) bool {
		if filter.Status != nil && p.Status != *filter.Status {
			return false
		}
		return filter.Slug == "" || p.Slug == filter.Slug
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalVotes > out[j].TotalVotes })
	return out, nil
}

func (r *memoryProposalRepository) Update(_ context.Context, p *models.GameProposal) error {
	return r.proposals.update(p, models.ErrProposalNotFound, nil)
}

func (r *memoryProposalRepository) Delete(_ context.Context, id string) error {
	return r.proposals.remove(id, models.ErrProposalNotFound)
}

type memoryBadgeRepository struct {
	badges *memoryCollection[models.Badge]
}

func NewMemoryBadgeRepository() BadgeRepository {
	return &memoryBadgeRepository{badges: newMemoryCollection(
		func(b *models.Badge) string { return b.ID },
		nil,
		func(b *models.Badge) *models.Badge {
			c := *b
			c.ImageURL = cloneString(b.ImageURL)
			return &c
		},
	)}
}

func (r *memoryBadgeRepository) Create(_ context.Context, b *models.Badge) error {
	return r.badges.insert(b, func(existing, b *models.Badge) error {
		if existing.Slug == b.Slug {
			return models.ErrBadgeNameTaken
		}
		return nil
	})
}

func (r *memoryBadgeRepository) GetByID(_ context.Context, id string) (*models.Badge, error) {
	if b, ok := r.badges.get(id); ok {
		return b, nil
	}
	return nil, models.ErrBadgeNotFound
}

func (r *memoryBadgeRepository) List(_ context.Context) ([]models.Badge, error) {
	return r.badges.filter(nil), nil
}

func (r *memoryBadgeRepository) Delete(_ context.Context, id string) error {
	return r.badges.remove(id, models.ErrBadgeNotFound)
}
