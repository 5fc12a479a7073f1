package models

import (
	"strings"
	"time"
)

type PlayerLevel string

const (
	LevelNovice       PlayerLevel = "novice"
	LevelIntermediate PlayerLevel = "intermediate"
	LevelExpert       PlayerLevel = "expert"
)

func (l PlayerLevel) Valid() bool {
	switch l {
	case LevelNovice, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

// Player это учетная запись участника сообщества.
type Player struct {
	ID                string      `json:"id"`
	Username          string      `json:"username"`
	DiscordID         *string     `json:"discord_id,omitempty"`
	TwitchLogin       *string     `json:"twitch_login,omitempty"`
	ExternalAccountID *string     `json:"external_account_id,omitempty"`
	AvatarURL         *string     `json:"avatar_url,omitempty"`
	Level             PlayerLevel `json:"level"`
	Badges            []string    `json:"badges"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Version int `json:"-"`
}

// UsernameKey is the normalised form used for case-insensitive uniqueness.
func UsernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (p *Player) HasBadge(badgeID string) bool {
	for _, id := range p.Badges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// PlayerRef is the populated form of a player reference used in responses.
type PlayerRef struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (p *Player) Ref() PlayerRef {
	return PlayerRef{ID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
}
