package ranking

import (
	"sort"
	"time"

	"github.com/Dosada05/community-tournaments/models"
)

const maxPartners = 5

type GameStats struct {
	GameID  string  `json:"game_id"`
	Played  int     `json:"played"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`
}

type Partner struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type PlayerStats struct {
	PlayerID         string     `json:"player_id"`
	MemberSince      *time.Time `json:"member_since,omitempty"`
	LastSeen         *time.Time `json:"last_seen,omitempty"`
	// ParticipationStreak counts every past tournament the player was
	// registered for; it is not limited to consecutive ones.
	ParticipationStreak int         `json:"participation_streak"`
	TotalTournaments    int         `json:"total_tournaments"`
	TotalVictories      int         `json:"total_victories"`
	TotalPoints         int         `json:"total_points"`
	LongestWinStreak    int         `json:"longest_win_streak"`
	Games               []GameStats `json:"games"`
	FrequentTeammates   []Partner   `json:"frequent_teammates"`
	WinningPartners     []Partner   `json:"winning_partners"`
}

// SortChronologically orders tournaments by date, oldest first.
func SortChronologically(tournaments []*models.Tournament) {
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].Date.Before(tournaments[j].Date)
	})
}

// Stats derives the extended statistics of one player. Participation
// (member since, last seen, streak) is based on roster membership in any
// tournament; results and partners are based on team membership in the
// finished tournaments of the scope.
func Stats(playerID string, tournaments []models.Tournament, scope Scope, now time.Time) PlayerStats {
	stats := PlayerStats{
		PlayerID:          playerID,
		Games:             []GameStats{},
		FrequentTeammates: []Partner{},
		WinningPartners:   []Partner{},
	}

	var registered []*models.Tournament
	for i := range tournaments {
		if tournaments[i].HasPlayer(playerID) {
			registered = append(registered, &tournaments[i])
		}
	}
	SortChronologically(registered)
	if len(registered) > 0 {
		first := registered[0].Date
		stats.MemberSince = &first
	}
	for _, t := range registered {
		if t.Date.After(now) {
			continue
		}
		stats.ParticipationStreak++
		last := t.Date
		stats.LastSeen = &last
	}

	played := Filter(tournaments, scope)
	SortChronologically(played)

	games := make(map[string]*GameStats)
	var gameOrder []string
	teammates := make(map[string]int)
	winners := make(map[string]int)
	streak := 0

	for _, t := range played {
		team := t.TeamOf(playerID)
		if team == nil {
			continue
		}
		won := team.Ranking == 1

		stats.TotalTournaments++
		stats.TotalPoints += team.Score
		if won {
			stats.TotalVictories++
			streak++
			if streak > stats.LongestWinStreak {
				stats.LongestWinStreak = streak
			}
		} else {
			streak = 0
		}

		g, ok := games[t.GameID]
		if !ok {
			g = &GameStats{GameID: t.GameID}
			games[t.GameID] = g
			gameOrder = append(gameOrder, t.GameID)
		}
		g.Played++
		if won {
			g.Wins++
		} else {
			g.Losses++
		}

		for _, mate := range team.Players {
			if mate == playerID {
				continue
			}
			teammates[mate]++
			if won {
				winners[mate]++
			}
		}
	}

	for _, id := range gameOrder {
		g := games[id]
		g.WinRate = float64(g.Wins) / float64(g.Played)
		stats.Games = append(stats.Games, *g)
	}
	stats.FrequentTeammates = topPartners(teammates)
	stats.WinningPartners = topPartners(winners)
	return stats
}

func topPartners(counts map[string]int) []Partner {
	partners := make([]Partner, 0, len(counts))
	for id, n := range counts {
		partners = append(partners, Partner{PlayerID: id, Count: n})
	}
	sort.Slice(partners, func(i, j int) bool {
		if partners[i].Count != partners[j].Count {
			return partners[i].Count > partners[j].Count
		}
		return partners[i].PlayerID < partners[j].PlayerID
	})
	if len(partners) > maxPartners {
		partners = partners[:maxPartners]
	}
	return partners
}
