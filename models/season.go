package models

import "time"

// Season groups tournaments. The season with the highest Numero is the current one;
// Numero 0 is reserved for tournaments played before seasons existed.
type Season struct {
	ID          string    `json:"id"`
	Numero      int       `json:"numero"`
	Name        string    `json:"name,omitempty"`
	Tournaments []string  `json:"tournaments"`
	CreatedAt   time.Time `json:"created_at"`

	Version int `json:"-"`
}

func (s *Season) Contains(tournamentID string) bool {
	for _, id := range s.Tournaments {
		if id == tournamentID {
			return true
		}
	}
	return false
}
