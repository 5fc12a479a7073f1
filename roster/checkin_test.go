package roster

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var regTime = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

func newTournament(players ...string) *models.Tournament {
	t := &models.Tournament{ID: "t1"}
	for _, id := range players {
		Register(t, id, regTime)
	}
	return t
}

func TestRegister(t *testing.T) {
	tour := newTournament("a")

	assert.False(t, Register(tour, "a", regTime.Add(time.Hour)), "second registration is a no-op")
	assert.Equal(t, regTime, tour.RegistrationDates["a"])

	require.True(t, Register(tour, "b", regTime))
	assert.Equal(t, []string{"a", "b"}, tour.Players)
	assert.False(t, tour.CheckIns["b"])
	assert.Empty(t, tour.Teams, "no team exists to receive the player")
	require.NoError(t, CheckInvariants(tour))
}

func TestRegister_joinsSmallestTeam(t *testing.T) {
	tour := newTournament("a", "b", "c")
	tour.Teams = []models.Team{
		{ID: "x", Players: []string{"a", "b"}},
		{ID: "y", Players: []string{"c"}},
	}
	require.True(t, Register(tour, "d", regTime))
	assert.Equal(t, []string{"c", "d"}, tour.Teams[1].Players)
	require.NoError(t, CheckInvariants(tour))
}

func TestUnregister(t *testing.T) {
	tour := newTournament("a", "b", "c", "d")
	tour.Teams = []models.Team{
		{ID: "x", Players: []string{"a", "b"}},
		{ID: "y", Players: []string{"c", "d"}},
	}
	require.NoError(t, SetCheckIn(tour, "b", true))

	require.True(t, Unregister(tour, "b"))

	assert.Equal(t, []string{"a", "c", "d"}, tour.Players)
	assert.NotContains(t, tour.CheckIns, "b")
	assert.NotContains(t, tour.RegistrationDates, "b")
	assert.Equal(t, []string{"a"}, tour.Teams[0].Players)
	assert.Equal(t, []string{"c", "d"}, tour.Teams[1].Players)
	require.NoError(t, CheckInvariants(tour))

	assert.False(t, Unregister(tour, "b"))
}

func TestSetCheckIn(t *testing.T) {
	tour := newTournament("a")
	require.NoError(t, SetCheckIn(tour, "a", true))
	assert.True(t, tour.CheckIns["a"])
	assert.Equal(t, []string{"a"}, CheckedIn(tour))

	err := SetCheckIn(tour, "ghost", true)
	require.ErrorIs(t, err, models.ErrNotRegistered)
	assert.NotContains(t, tour.CheckIns, "ghost")
}

func TestUpdatePlayers(t *testing.T) {
	tour := newTournament("a", "b", "c", "d")
	tour.Teams = []models.Team{
		{ID: "x", Players: []string{"a", "b"}},
		{ID: "y", Players: []string{"c", "d"}},
	}
	require.NoError(t, SetCheckIn(tour, "a", true))
	editTime := regTime.Add(24 * time.Hour)

	added, removed := UpdatePlayers(tour, []string{"a", "c", "e", "f", "g"}, editTime)

	assert.Equal(t, []string{"e", "f", "g"}, added)
	assert.ElementsMatch(t, []string{"b", "d"}, removed)
	assert.True(t, tour.CheckIns["a"], "retained players keep their check-in")
	assert.False(t, tour.CheckIns["e"])
	assert.Equal(t, regTime, tour.RegistrationDates["a"])
	assert.Equal(t, editTime, tour.RegistrationDates["g"])
	// x=[a], y=[c] -> e to x, f to y, g to x
	assert.Equal(t, []string{"a", "e", "g"}, tour.Teams[0].Players)
	assert.Equal(t, []string{"c", "f"}, tour.Teams[1].Players)
	require.NoError(t, CheckInvariants(tour))
}

func TestRosterInvariants_randomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := playerIDs(12)

	for run := 0; run < 200; run++ {
		tour := &models.Tournament{ID: "t"}
		for step := 0; step < 40; step++ {
			id := pool[rng.Intn(len(pool))]
			switch rng.Intn(5) {
			case 0, 1:
				Register(tour, id, regTime)
			case 2:
				Unregister(tour, id)
			case 3:
				_ = SetCheckIn(tour, id, rng.Intn(2) == 0)
			case 4:
				if len(tour.Players) > 0 {
					require.NoError(t, GenerateTeams(tour, 1+rng.Intn(4), nil, rng))
				}
			}
			require.NoError(t, CheckInvariants(tour), "run %d step %d", run, step)
		}
	}
}
