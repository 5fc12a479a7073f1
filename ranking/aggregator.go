// Package ranking computes player and season standings from tournament
// documents. Every function is a pure computation over the slices it is given;
// nothing is cached between calls.
package ranking

import (
	"sort"

	"github.com/Dosada05/community-tournaments/models"
)

// Scope narrows the tournaments taken into account. Zero value means all
// finished tournaments.
type Scope struct {
	GameID string
	Season *models.Season
}

type PlayerRanking struct {
	Player           models.PlayerRef `json:"player"`
	TotalTournaments int              `json:"total_tournaments"`
	TotalVictories   int              `json:"total_victories"`
	TotalPoints      int              `json:"total_points"`
}

func (s Scope) includes(t *models.Tournament) bool {
	if !t.Finished {
		return false
	}
	if s.GameID != "" && t.GameID != s.GameID {
		return false
	}
	if s.Season != nil && !s.Season.Contains(t.ID) {
		return false
	}
	return true
}

// Filter returns the finished tournaments matching the scope, in input order.
func Filter(tournaments []models.Tournament, scope Scope) []*models.Tournament {
	out := make([]*models.Tournament, 0, len(tournaments))
	for i := range tournaments {
		if scope.includes(&tournaments[i]) {
			out = append(out, &tournaments[i])
		}
	}
	return out
}

// Compute ranks players by victories, then points. Players who did not play
// in any team of the scoped tournaments are left out. Ties keep the order of
// the players slice.
func Compute(tournaments []models.Tournament, players []models.Player, scope Scope) []PlayerRanking {
	filtered := Filter(tournaments, scope)

	rankings := make([]PlayerRanking, 0, len(players))
	for i := range players {
		r := PlayerRanking{Player: players[i].Ref()}
		for _, t := range filtered {
			team := t.TeamOf(players[i].ID)
			if team == nil {
				continue
			}
			r.TotalTournaments++
			r.TotalPoints += team.Score
			if team.Ranking == 1 {
				r.TotalVictories++
			}
		}
		if r.TotalTournaments == 0 {
			continue
		}
		rankings = append(rankings, r)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].TotalVictories != rankings[j].TotalVictories {
			return rankings[i].TotalVictories > rankings[j].TotalVictories
		}
		return rankings[i].TotalPoints > rankings[j].TotalPoints
	})
	return rankings
}
