package services

import (
	"context"
	"time"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/roster"
)

type TeamView struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	DisplayName string             `json:"display_name"`
	Players     []models.PlayerRef `json:"players"`
	Score       int                `json:"score"`
	Ranking     int                `json:"ranking"`
}

type TournamentView struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	GameID            string                 `json:"game_id"`
	Description       string                 `json:"description,omitempty"`
	Date              time.Time              `json:"date"`
	State             models.TournamentState `json:"state"`
	Finished          bool                   `json:"finished"`
	Players           []models.PlayerRef     `json:"players"`
	Teams             []TeamView             `json:"teams"`
	CheckIns          map[string]bool        `json:"check_ins"`
	RegistrationDates map[string]time.Time   `json:"registration_dates"`
	DiscordChannelIDs []string               `json:"discord_channel_ids,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// loadPlayerRefs resolves player ids to references. Unknown ids resolve to a
// reference carrying only the id.
func loadPlayerRefs(ctx context.Context, repo repositories.PlayerRepository, ids []string) (map[string]models.PlayerRef, error) {
	refs := make(map[string]models.PlayerRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	players, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range players {
		refs[players[i].ID] = players[i].Ref()
	}
	return refs, nil
}

func refsFor(ids []string, refs map[string]models.PlayerRef) []models.PlayerRef {
	out := make([]models.PlayerRef, 0, len(ids))
	for _, id := range ids {
		ref, ok := refs[id]
		if !ok {
			ref = models.PlayerRef{ID: id}
		}
		out = append(out, ref)
	}
	return out
}

func newTournamentView(t *models.Tournament, refs map[string]models.PlayerRef) TournamentView {
	view := TournamentView{
		ID:                t.ID,
		Name:              t.Name,
		GameID:            t.GameID,
		Description:       t.Description,
		Date:              t.Date,
		State:             t.State(),
		Finished:          t.Finished,
		Players:           refsFor(t.Players, refs),
		Teams:             make([]TeamView, 0, len(t.Teams)),
		CheckIns:          t.CheckIns,
		RegistrationDates: t.RegistrationDates,
		DiscordChannelIDs: t.DiscordChannelIDs,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if view.CheckIns == nil {
		view.CheckIns = map[string]bool{}
	}
	if view.RegistrationDates == nil {
		view.RegistrationDates = map[string]time.Time{}
	}
	for _, team := range t.Teams {
		view.Teams = append(view.Teams, TeamView{
			ID:          team.ID,
			Name:        team.Name,
			DisplayName: roster.DisplayTeamName(team),
			Players:     refsFor(team.Players, refs),
			Score:       team.Score,
			Ranking:     team.Ranking,
		})
	}
	return view
}
