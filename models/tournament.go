package models

import "time"

// TournamentState is derived from the document, it is never stored.
type TournamentState string

const (
	StateDraft       TournamentState = "draft"
	StateTeamsFormed TournamentState = "teams_formed"
	StateFinished    TournamentState = "finished"
)

// Team is embedded in its tournament. Ranking 1 is the winner, 0 means unranked.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Score   int      `json:"score"`
	Ranking int      `json:"ranking"`
}

func (t *Team) HasPlayer(playerID string) bool {
	for _, id := range t.Players {
		if id == playerID {
			return true
		}
	}
	return false
}

type Tournament struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	GameID            string               `json:"game_id"`
	Description       string               `json:"description,omitempty"`
	Date              time.Time            `json:"date"`
	Players           []string             `json:"players"`
	Teams             []Team               `json:"teams"`
	CheckIns          map[string]bool      `json:"check_ins"`
	RegistrationDates map[string]time.Time `json:"registration_dates"`
	Finished          bool                 `json:"finished"`
	ReminderSent      bool                 `json:"reminder_sent"`
	DiscordChannelIDs []string             `json:"discord_channel_ids,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`

	Version int `json:"-"`
}

func (t *Tournament) State() TournamentState {
	switch {
	case t.Finished:
		return StateFinished
	case len(t.Teams) > 0:
		return StateTeamsFormed
	default:
		return StateDraft
	}
}

func (t *Tournament) HasPlayer(playerID string) bool {
	for _, id := range t.Players {
		if id == playerID {
			return true
		}
	}
	return false
}

// TeamIndexOf returns the index of the team holding playerID, or -1.
func (t *Tournament) TeamIndexOf(playerID string) int {
	for i := range t.Teams {
		if t.Teams[i].HasPlayer(playerID) {
			return i
		}
	}
	return -1
}

// TeamOf returns the player's team or nil when the player is unassigned.
func (t *Tournament) TeamOf(playerID string) *Team {
	if i := t.TeamIndexOf(playerID); i >= 0 {
		return &t.Teams[i]
	}
	return nil
}

func (t *Tournament) TeamByID(teamID string) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == teamID {
			return &t.Teams[i]
		}
	}
	return nil
}

// Clone returns a deep copy so mutations never alias the stored document.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Players = append([]string(nil), t.Players...)
	c.DiscordChannelIDs = append([]string(nil), t.DiscordChannelIDs...)
	if t.Teams != nil {
		c.Teams = make([]Team, len(t.Teams))
		for i, team := range t.Teams {
			team.Players = append([]string(nil), team.Players...)
			c.Teams[i] = team
		}
	}
	c.CheckIns = make(map[string]bool, len(t.CheckIns))
	for k, v := range t.CheckIns {
		c.CheckIns[k] = v
	}
	c.RegistrationDates = make(map[string]time.Time, len(t.RegistrationDates))
	for k, v := range t.RegistrationDates {
		c.RegistrationDates[k] = v
	}
	return &c
}
