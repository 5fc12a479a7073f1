package roster

import (
	"time"

	"github.com/Dosada05/community-tournaments/models"
)

func ensureMaps(t *models.Tournament) {
	if t.CheckIns == nil {
		t.CheckIns = make(map[string]bool)
	}
	if t.RegistrationDates == nil {
		t.RegistrationDates = make(map[string]time.Time)
	}
}

// Register adds the player to the roster with check-in false and the given
// registration date. When teams exist the player joins the smallest one.
// It reports false if the player was already registered.
func Register(t *models.Tournament, playerID string, at time.Time) bool {
	ensureMaps(t)
	if t.HasPlayer(playerID) {
		return false
	}
	t.Players = append(t.Players, playerID)
	t.CheckIns[playerID] = false
	t.RegistrationDates[playerID] = at
	AddToSmallestTeam(t.Teams, playerID)
	return true
}

// Unregister removes the player from the roster, the check-in and
// registration maps and from its team. It reports false if the player was not
// registered.
func Unregister(t *models.Tournament, playerID string) bool {
	ensureMaps(t)
	idx := -1
	for i, id := range t.Players {
		if id == playerID {
			idx = i
			break
		}
	}
	delete(t.CheckIns, playerID)
	delete(t.RegistrationDates, playerID)
	removed := RemoveFromTeams(t.Teams, playerID)
	if idx < 0 {
		return removed
	}
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
	return true
}

// SetCheckIn records the check-in flag of a registered player.
func SetCheckIn(t *models.Tournament, playerID string, value bool) error {
	if !t.HasPlayer(playerID) {
		return models.ErrNotRegistered
	}
	ensureMaps(t)
	t.CheckIns[playerID] = value
	return nil
}

// UpdatePlayers replaces the roster with newPlayers. Removed players leave
// their teams, added players are dealt one by one into the smallest team.
// Retained players keep their check-in and registration date; added players
// get check-in false and the edit time as registration date.
func UpdatePlayers(t *models.Tournament, newPlayers []string, at time.Time) (added, removed []string) {
	ensureMaps(t)
	wanted := make(map[string]bool, len(newPlayers))
	for _, id := range newPlayers {
		wanted[id] = true
	}
	for _, id := range append([]string(nil), t.Players...) {
		if !wanted[id] {
			Unregister(t, id)
			removed = append(removed, id)
		}
	}
	for _, id := range newPlayers {
		if Register(t, id, at) {
			added = append(added, id)
		}
	}
	return added, removed
}

// CheckedIn returns the registered players whose check-in flag is set, in roster order.
func CheckedIn(t *models.Tournament) []string {
	var ids []string
	for _, id := range t.Players {
		if t.CheckIns[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
