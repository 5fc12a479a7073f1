package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Dosada05/community-tournaments/db"
	"github.com/Dosada05/community-tournaments/models"
)

// Один и тот же набор проверок прогоняется на обеих реализациях хранилища.
func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) *Store { return NewMemoryStore() })
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16.3-alpine",
		postgres.WithDatabase("community"),
		postgres.WithUsername("community"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("error terminating container: %v", err)
		}
	})

	// explicitly set sslmode=disable because the container is not configured to use TLS
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn))

	runStoreContract(t, func(t *testing.T) *Store {
		for _, table := range []string{"players", "tournaments", "seasons", "games", "game_proposals", "badges"} {
			_, err := conn.ExecContext(ctx, "TRUNCATE "+table)
			require.NoError(t, err)
		}
		return NewPostgresStore(conn)
	})
}

func runStoreContract(t *testing.T, newStore func(t *testing.T) *Store) {
	t.Run("players", func(t *testing.T) { testPlayers(t, newStore(t)) })
	t.Run("tournaments", func(t *testing.T) { testTournaments(t, newStore(t)) })
	t.Run("seasons", func(t *testing.T) { testSeasons(t, newStore(t)) })
	t.Run("games and proposals", func(t *testing.T) { testGamesAndProposals(t, newStore(t)) })
	t.Run("badges", func(t *testing.T) { testBadges(t, newStore(t)) })
}

var created = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newPlayer(username string) *models.Player {
	return &models.Player{
		ID:        uuid.NewString(),
		Username:  username,
		Level:     models.LevelNovice,
		Badges:    []string{},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func testPlayers(t *testing.T, s *Store) {
	ctx := context.Background()

	discord := "discord-1"
	alice := newPlayer("Alice")
	alice.DiscordID = &discord
	require.NoError(t, s.Players.Create(ctx, alice))
	assert.Equal(t, 1, alice.Version)

	err := s.Players.Create(ctx, newPlayer("  aLiCe "))
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
	assert.ErrorIs(t, err, models.ErrConflict)

	got, err := s.Players.GetByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = s.Players.GetByDiscordID(ctx, "discord-1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	bob := newPlayer("Bob")
	require.NoError(t, s.Players.Create(ctx, bob))

	list, err := s.Players.ListByIDs(ctx, []string{bob.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Username)

	stale, err := s.Players.GetByID(ctx, alice.ID)
	require.NoError(t, err)

	got.Level = models.LevelExpert
	require.NoError(t, s.Players.Update(ctx, got))
	assert.Equal(t, 2, got.Version)

	stale.Level = models.LevelIntermediate
	assert.ErrorIs(t, s.Players.Update(ctx, stale), models.ErrVersionConflict)

	got.Username = "bob"
	assert.ErrorIs(t, s.Players.Update(ctx, got), models.ErrUsernameTaken)

	require.NoError(t, s.Players.Delete(ctx, alice.ID))
	_, err = s.Players.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.Players.Delete(ctx, alice.ID), models.ErrPlayerNotFound)
	assert.ErrorIs(t, s.Players.Update(ctx, alice), models.ErrPlayerNotFound)
}

func testTournaments(t *testing.T, s *Store) {
	ctx := context.Background()

	newTournament := func(game string, date time.Time, players ...string) *models.Tournament {
		tr := &models.Tournament{
			ID:                uuid.NewString(),
			Name:              "Cup",
			GameID:            game,
			Date:              date,
			Players:           players,
			Teams:             []models.Team{},
			CheckIns:          map[string]bool{},
			RegistrationDates: map[string]time.Time{},
			CreatedAt:         created,
		}
		for _, p := range players {
			tr.CheckIns[p] = false
			tr.RegistrationDates[p] = created
		}
		return tr
	}

	late := newTournament("g1", created.AddDate(0, 0, 2), "a", "b")
	early := newTournament("g2", created.AddDate(0, 0, 1), "b")
	require.NoError(t, s.Tournaments.Create(ctx, late))
	require.NoError(t, s.Tournaments.Create(ctx, early))

	all, err := s.Tournaments.List(ctx, ListTournamentsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, early.ID, all[0].ID, "ordered by date")

	withA, err := s.Tournaments.List(ctx, ListTournamentsFilter{PlayerID: "a"})
	require.NoError(t, err)
	require.Len(t, withA, 1)
	assert.Equal(t, late.ID, withA[0].ID)

	byIDs, err := s.Tournaments.List(ctx, ListTournamentsFilter{IDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, byIDs, "an empty id list selects nothing")

	got, err := s.Tournaments.GetByID(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, late.Players, got.Players)
	assert.Equal(t, late.CheckIns, got.CheckIns)

	got.Finished = true
	got.Teams = []models.Team{{ID: "t1", Name: "Alpha", Players: []string{"a", "b"}, Ranking: 1}}
	require.NoError(t, s.Tournaments.Update(ctx, got))

	finished := true
	done, err := s.Tournaments.List(ctx, ListTournamentsFilter{Finished: &finished, GameID: "g1"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Alpha", done[0].Teams[0].Name)

	from := created.AddDate(0, 0, 2)
	window, err := s.Tournaments.List(ctx, ListTournamentsFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, late.ID, window[0].ID)

	late.Name = "stale write"
	assert.ErrorIs(t, s.Tournaments.Update(ctx, late), models.ErrVersionConflict)

	require.NoError(t, s.Tournaments.Delete(ctx, early.ID))
	_, err = s.Tournaments.GetByID(ctx, early.ID)
	assert.ErrorIs(t, err, models.ErrTournamentNotFound)
}

func testSeasons(t *testing.T, s *Store) {
	ctx := context.Background()

	_, err := s.Seasons.GetCurrent(ctx)
	assert.ErrorIs(t, err, models.ErrSeasonNotFound)

	s1 := &models.Season{ID: uuid.NewString(), Numero: 1, Tournaments: []string{"t1"}, CreatedAt: created}
	s2 := &models.Season{ID: uuid.NewString(), Numero: 2, Tournaments: []string{}, CreatedAt: created}
	require.NoError(t, s.Seasons.Create(ctx, s2))
	require.NoError(t, s.Seasons.Create(ctx, s1))

	dup := &models.Season{ID: uuid.NewString(), Numero: 2, Tournaments: []string{}, CreatedAt: created}
	assert.ErrorIs(t, s.Seasons.Create(ctx, dup), models.ErrSeasonNumeroTaken)

	current, err := s.Seasons.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, s2.ID, current.ID)

	holder, err := s.Seasons.FindByTournament(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, s1.ID, holder.ID)
	_, err = s.Seasons.FindByTournament(ctx, "t2")
	assert.ErrorIs(t, err, models.ErrSeasonNotFound)

	list, err := s.Seasons.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Numero)

	byNumero, err := s.Seasons.GetByNumero(ctx, 2)
	require.NoError(t, err)
	byNumero.Tournaments = append(byNumero.Tournaments, "t2")
	require.NoError(t, s.Seasons.Update(ctx, byNumero))

	holder, err = s.Seasons.FindByTournament(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, s2.ID, holder.ID)
}

func testGamesAndProposals(t *testing.T, s *Store) {
	ctx := context.Background()

	game := &models.Game{ID: uuid.NewString(), Name: "Rocket League", Slug: "rocket-league", CreatedAt: created}
	require.NoError(t, s.Games.Create(ctx, game))
	dup := &models.Game{ID: uuid.NewString(), Name: "rocket league", Slug: "rocket-league", CreatedAt: created}
	assert.ErrorIs(t, s.Games.Create(ctx, dup), models.ErrGameNameTaken)

	bySlug, err := s.Games.GetBySlug(ctx, "rocket-league")
	require.NoError(t, err)
	assert.Equal(t, game.ID, bySlug.ID)

	low := &models.GameProposal{ID: uuid.NewString(), Name: "Chess", Slug: "chess", Status: models.ProposalPending,
		Votes: []models.Vote{}, CreatedAt: created}
	high := &models.GameProposal{ID: uuid.NewString(), Name: "Dota", Slug: "dota", Status: models.ProposalPending,
		Votes: []models.Vote{{PlayerID: "a", Value: 1}, {PlayerID: "b", Value: 1}}, TotalVotes: 2, CreatedAt: created}
	require.NoError(t, s.Proposals.Create(ctx, low))
	require.NoError(t, s.Proposals.Create(ctx, high))

	list, err := s.Proposals.List(ctx, ListProposalsFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, high.ID, list[0].ID)

	low.Status = models.ProposalRejected
	require.NoError(t, s.Proposals.Update(ctx, low))

	pending := models.ProposalPending
	list, err = s.Proposals.List(ctx, ListProposalsFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, high.ID, list[0].ID)

	list, err = s.Proposals.List(ctx, ListProposalsFilter{Slug: "chess"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ProposalRejected, list[0].Status)

	require.NoError(t, s.Proposals.Delete(ctx, low.ID))
	_, err = s.Proposals.GetByID(ctx, low.ID)
	assert.ErrorIs(t, err, models.ErrProposalNotFound)
}

func testBadges(t *testing.T, s *Store) {
	ctx := context.Background()

	b := &models.Badge{ID: uuid.NewString(), Name: "Veteran", Slug: "veteran",
		Criterion: models.CriterionTournamentsPlayed, Threshold: 10, CreatedAt: created}
	require.NoError(t, s.Badges.Create(ctx, b))
	assert.ErrorIs(t, s.Badges.Create(ctx, &models.Badge{ID: uuid.NewString(), Name: "veteran", Slug: "veteran"}),
		models.ErrBadgeNameTaken)

	got, err := s.Badges.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Threshold)

	require.NoError(t, s.Badges.Delete(ctx, b.ID))
	list, err := s.Badges.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_returnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTournamentRepository()

	tr := &models.Tournament{ID: "t", Players: []string{"a"}, CheckIns: map[string]bool{"a": false}}
	require.NoError(t, repo.Create(ctx, tr))

	got, err := repo.GetByID(ctx, "t")
	require.NoError(t, err)
	got.Players[0] = "mutated"
	got.CheckIns["a"] = true

	again, err := repo.GetByID(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Players)
	assert.False(t, again.CheckIns["a"])
}
