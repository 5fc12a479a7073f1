package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/models"
)

var day = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

func players(names ...string) []models.Player {
	out := make([]models.Player, len(names))
	for i, n := range names {
		out[i] = models.Player{ID: n, Username: n}
	}
	return out
}

func finished(id, game string, date time.Time, teams ...models.Team) models.Tournament {
	t := models.Tournament{ID: id, GameID: game, Date: date, Teams: teams, Finished: true}
	for _, team := range teams {
		t.Players = append(t.Players, team.Players...)
	}
	return t
}

func team(name string, ranking, score int, members ...string) models.Team {
	return models.Team{ID: name, Name: name, Players: members, Ranking: ranking, Score: score}
}

func TestCompute_winnerAndRunnerUp(t *testing.T) {
	tournaments := []models.Tournament{
		finished("t1", "g1", day,
			team("Alpha", 1, 8, "A", "B"),
			team("Beta", 2, 3, "C", "D"),
		),
	}

	got := Compute(tournaments, players("A", "C", "Z"), Scope{})
	require.Len(t, got, 2, "Z never played and must be excluded")

	assert.Equal(t, "A", got[0].Player.ID)
	assert.Equal(t, 1, got[0].TotalVictories)
	assert.Equal(t, 8, got[0].TotalPoints)
	assert.Equal(t, 1, got[0].TotalTournaments)

	assert.Equal(t, "C", got[1].Player.ID)
	assert.Equal(t, 0, got[1].TotalVictories)
	assert.Equal(t, 3, got[1].TotalPoints)
}

func TestCompute_ignoresUnfinished(t *testing.T) {
	open := finished("t2", "g1", day, team("Alpha", 1, 5, "A"))
	open.Finished = false

	got := Compute([]models.Tournament{open}, players("A"), Scope{})
	assert.Empty(t, got)
}

func TestCompute_orderAndTies(t *testing.T) {
	tournaments := []models.Tournament{
		finished("t1", "g1", day, team("x", 1, 10, "A"), team("y", 2, 10, "B"), team("z", 3, 2, "C")),
		finished("t2", "g1", day, team("x", 1, 4, "B"), team("y", 2, 12, "C"), team("z", 3, 0, "D")),
	}

	got := Compute(tournaments, players("D", "C", "B", "A"), Scope{})
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.Player.ID
	}
	// B: 1 win / 14 pts, A: 1 win / 10 pts, C: 0 / 14, D: 0 / 0
	assert.Equal(t, []string{"B", "A", "C", "D"}, ids)
}

func TestCompute_stableOnFullTie(t *testing.T) {
	tournaments := []models.Tournament{
		finished("t1", "g1", day, team("x", 1, 5, "A", "B")),
	}
	got := Compute(tournaments, players("B", "A"), Scope{})
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Player.ID)
	assert.Equal(t, "A", got[1].Player.ID)
}

func TestCompute_scope(t *testing.T) {
	tournaments := []models.Tournament{
		finished("t1", "g1", day, team("x", 1, 5, "A")),
		finished("t2", "g2", day, team("x", 1, 7, "A")),
		finished("t3", "g2", day, team("x", 2, 1, "A")),
	}
	season := &models.Season{ID: "s1", Numero: 1, Tournaments: []string{"t1", "t3"}}

	tests := map[string]struct {
		scope     Scope
		wantPlays int
		wantWins  int
		wantPts   int
	}{
		"all":             {Scope{}, 3, 2, 13},
		"by game":         {Scope{GameID: "g2"}, 2, 1, 8},
		"by season":       {Scope{Season: season}, 2, 1, 6},
		"game and season": {Scope{GameID: "g2", Season: season}, 1, 0, 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Compute(tournaments, players("A"), tc.scope)
			require.Len(t, got, 1)
			assert.Equal(t, tc.wantPlays, got[0].TotalTournaments)
			assert.Equal(t, tc.wantWins, got[0].TotalVictories)
			assert.Equal(t, tc.wantPts, got[0].TotalPoints)
		})
	}
}

func TestCompute_emptySeason(t *testing.T) {
	tournaments := []models.Tournament{finished("t1", "g1", day, team("x", 1, 5, "A"))}
	got := Compute(tournaments, players("A"), Scope{Season: &models.Season{ID: "s"}})
	assert.Empty(t, got)
}

func TestCompute_idempotent(t *testing.T) {
	tournaments := []models.Tournament{
		finished("t1", "g1", day, team("x", 1, 10, "A", "B"), team("y", 2, 3, "C")),
	}
	ps := players("A", "B", "C")

	first := Compute(tournaments, ps, Scope{})
	second := Compute(tournaments, ps, Scope{})
	assert.Equal(t, first, second)
}
