package models

import "time"

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalPending, ProposalApproved, ProposalRejected:
		return true
	}
	return false
}

type Vote struct {
	PlayerID string `json:"player_id"`
	Value    int    `json:"value"`
}

// GameProposal is a game suggested by the community. TotalVotes is always the sum of Votes.
type GameProposal struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description,omitempty"`
	ImageURL         *string        `json:"image_url,omitempty"`
	ProposedBy       string         `json:"proposed_by"`
	Status           ProposalStatus `json:"status"`
	Votes            []Vote         `json:"votes"`
	TotalVotes       int            `json:"total_votes"`
	DiscordMessageID *string        `json:"discord_message_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	Version int `json:"-"`
}
