package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Dosada05/community-tournaments/models"
)

// GenerateTeams replaces all teams of a tournament that is not finished with
// a fresh random deal of its roster.
func GenerateTeams(t *models.Tournament, numTeams int, names []string, rng Rand) error {
	if t.Finished {
		return models.ErrTournamentFinished
	}
	teams, err := DealTeams(t.Players, numTeams, names, rng)
	if err != nil {
		return err
	}
	t.Teams = teams
	return nil
}

func SetTeamRanking(t *models.Tournament, teamID string, ranking int) error {
	if ranking < 0 {
		return models.ErrInvalidRanking
	}
	team := t.TeamByID(teamID)
	if team == nil {
		return models.ErrTeamNotFound
	}
	team.Ranking = ranking
	return nil
}

// SetTeamScore stores the score and normalises the team name back to its base
// form, so older names that still carry a score suffix are cleaned up.
func SetTeamScore(t *models.Tournament, teamID string, score int) error {
	team := t.TeamByID(teamID)
	if team == nil {
		return models.ErrTeamNotFound
	}
	team.Score = score
	team.Name = BaseTeamName(team.Name)
	return nil
}

// MarkFinished finishes the tournament once at least one team has a ranking.
func MarkFinished(t *models.Tournament) error {
	for _, team := range t.Teams {
		if team.Ranking > 0 {
			t.Finished = true
			return nil
		}
	}
	return models.ErrNoRankedTeam
}

// ForceFinish finishes the tournament without checking for a recorded result.
func ForceFinish(t *models.Tournament) {
	t.Finished = true
}

func Unfinish(t *models.Tournament) {
	t.Finished = false
}

var scoreSuffix = regexp.MustCompile(`(\s*\(-?\d+ Pts\))+$`)

// BaseTeamName strips any trailing "(N Pts)" annotations.
func BaseTeamName(name string) string {
	return strings.TrimSpace(scoreSuffix.ReplaceAllString(name, ""))
}

// DisplayTeamName renders the label shown next to a team: its base name with
// the current score appended.
func DisplayTeamName(team models.Team) string {
	base := BaseTeamName(team.Name)
	if team.Score == 0 {
		return base
	}
	return fmt.Sprintf("%s (%d Pts)", base, team.Score)
}

// CheckInvariants verifies the roster rules of a tournament document: team
// members are registered players appearing in a single team, and the check-in
// and registration maps cover exactly the roster.
func CheckInvariants(t *models.Tournament) error {
	roster := make(map[string]bool, len(t.Players))
	for _, id := range t.Players {
		if roster[id] {
			return fmt.Errorf("player %s registered twice", id)
		}
		roster[id] = true
	}
	seen := make(map[string]string)
	for _, team := range t.Teams {
		for _, id := range team.Players {
			if !roster[id] {
				return fmt.Errorf("team %s holds unregistered player %s", team.ID, id)
			}
			if other, ok := seen[id]; ok {
				return fmt.Errorf("player %s is in teams %s and %s", id, other, team.ID)
			}
			seen[id] = team.ID
		}
	}
	if len(t.CheckIns) != len(roster) || len(t.RegistrationDates) != len(roster) {
		return fmt.Errorf("check-in/registration maps do not match roster of %d players", len(roster))
	}
	for id := range t.CheckIns {
		if !roster[id] {
			return fmt.Errorf("check-in recorded for unregistered player %s", id)
		}
	}
	for id := range t.RegistrationDates {
		if !roster[id] {
			return fmt.Errorf("registration date recorded for unregistered player %s", id)
		}
	}
	return nil
}
