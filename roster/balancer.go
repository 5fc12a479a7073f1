// Package roster holds the pure tournament rules: team balancing, registration
// and check-in tracking, and the lifecycle transitions of a tournament document.
// Functions mutate the *models.Tournament they are given; callers pass a clone
// and persist it only when the whole operation succeeded.
package roster

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/google/uuid"
)

// Rand is the subset of *rand.Rand used for the random deal.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// DefaultRand draws from the goroutine-safe top-level math/rand source.
var DefaultRand Rand = globalRand{}

// DealTeams creates numTeams empty teams and deals the players into them: one
// uniformly random remaining player per turn, teams served in round-robin order.
func DealTeams(players []string, numTeams int, names []string, rng Rand) ([]models.Team, error) {
	if numTeams < 1 {
		return nil, models.ErrInvalidTeamCount
	}
	if rng == nil {
		rng = DefaultRand
	}

	teams := make([]models.Team, numTeams)
	for i := range teams {
		teams[i] = models.Team{
			ID:      uuid.NewString(),
			Name:    teamName(names, i),
			Players: []string{},
		}
	}

	pool := append([]string(nil), players...)
	for turn := 0; len(pool) > 0; turn++ {
		j := rng.Intn(len(pool))
		team := &teams[turn%numTeams]
		team.Players = append(team.Players, pool[j])

		last := len(pool) - 1
		pool[j] = pool[last]
		pool = pool[:last]
	}
	return teams, nil
}

func teamName(names []string, i int) string {
	if i < len(names) {
		if name := strings.TrimSpace(names[i]); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Team %d", i+1)
}

// AddToSmallestTeam places the player in the team with the strictly smallest
// member count, the first one in order on ties. It reports false when there is
// no team to receive the player.
func AddToSmallestTeam(teams []models.Team, playerID string) bool {
	if len(teams) == 0 {
		return false
	}
	smallest := 0
	for i := 1; i < len(teams); i++ {
		if len(teams[i].Players) < len(teams[smallest].Players) {
			smallest = i
		}
	}
	teams[smallest].Players = append(teams[smallest].Players, playerID)
	return true
}

// AddPlayers distributes the players one by one with AddToSmallestTeam.
func AddPlayers(teams []models.Team, playerIDs []string) {
	for _, id := range playerIDs {
		AddToSmallestTeam(teams, id)
	}
}

// RemoveFromTeams deletes the player from any team holding it. Remaining
// members keep their assignment; nothing is rebalanced.
func RemoveFromTeams(teams []models.Team, playerID string) bool {
	removed := false
	for i := range teams {
		kept := teams[i].Players[:0]
		for _, id := range teams[i].Players {
			if id == playerID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		teams[i].Players = kept
	}
	return removed
}
