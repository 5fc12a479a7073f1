package repositories

import "database/sql"

// Store groups the repositories of every collection.
type Store struct {
	Players     PlayerRepository
	Tournaments TournamentRepository
	Seasons     SeasonRepository
	Games       GameRepository
	Proposals   ProposalRepository
	Badges      BadgeRepository
}

func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Players:     NewPostgresPlayerRepository(db),
		Tournaments: NewPostgresTournamentRepository(db),
		Seasons:     NewPostgresSeasonRepository(db),
		Games:       NewPostgresGameRepository(db),
		Proposals:   NewPostgresProposalRepository(db),
		Badges:      NewPostgresBadgeRepository(db),
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Players:     NewMemoryPlayerRepository(),
		Tournaments: NewMemoryTournamentRepository(),
		Seasons:     NewMemorySeasonRepository(),
		Games:       NewMemoryGameRepository(),
		Proposals:   NewMemoryProposalRepository(),
		Badges:      NewMemoryBadgeRepository(),
	}
}
