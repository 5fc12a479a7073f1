package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/models"
)

func TestCurrentSeason(t *testing.T) {
	assert.Nil(t, CurrentSeason(nil))

	seasons := []models.Season{{ID: "a", Numero: 0}, {ID: "c", Numero: 3}, {ID: "b", Numero: 2}}
	require.NotNil(t, CurrentSeason(seasons))
	assert.Equal(t, "c", CurrentSeason(seasons).ID)
}

func TestSeasonChampions(t *testing.T) {
	tournaments := []models.Tournament{
		finished("t0", "g", day, team("x", 1, 1, "OLD")),
		finished("t1", "g", day, team("x", 1, 4, "A"), team("y", 2, 1, "B")),
		finished("t2", "g", day, team("x", 1, 9, "B"), team("y", 2, 1, "A")),
		finished("t3", "g", day, team("x", 1, 2, "C")),
	}
	seasons := []models.Season{
		{ID: "s3", Numero: 3, Tournaments: []string{"t3"}},
		{ID: "s0", Numero: 0, Tournaments: []string{"t0"}},
		{ID: "s2", Numero: 2, Tournaments: []string{"t2"}},
		{ID: "s1", Numero: 1, Tournaments: []string{"t1"}},
		{ID: "empty", Numero: 4},
	}

	got := SeasonChampions(seasons, tournaments, players("A", "B", "C", "OLD"))
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Numero)
	assert.Equal(t, "A", got[0].Champion.Player.ID)
	assert.Equal(t, 2, got[1].Numero)
	assert.Equal(t, "B", got[1].Champion.Player.ID)
	assert.Equal(t, 3, got[2].Numero)
	assert.Equal(t, "C", got[2].Champion.Player.ID)

	counts := ChampionshipCounts(got)
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, counts)
}
