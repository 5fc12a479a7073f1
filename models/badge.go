package models

import "time"

// BadgeCriterion names the player statistic a badge threshold is compared against.
type BadgeCriterion string

const (
	CriterionTournamentsPlayed BadgeCriterion = "tournaments_played"
	CriterionTournamentWins    BadgeCriterion = "tournament_wins"
	CriterionSeasonChampion    BadgeCriterion = "season_champion"
	CriterionWinStreak         BadgeCriterion = "win_streak"
)

func (c BadgeCriterion) Valid() bool {
	switch c {
	case CriterionTournamentsPlayed, CriterionTournamentWins, CriterionSeasonChampion, CriterionWinStreak:
		return true
	}
	return false
}

type Badge struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Criterion   BadgeCriterion `json:"criterion"`
	Threshold   int            `json:"threshold"`
	CreatedAt   time.Time      `json:"created_at"`
}
