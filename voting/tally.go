// Package voting keeps the vote list of a game proposal and its running total.
package voting

import "github.com/Dosada05/community-tournaments/models"

// Cast records voterID's vote on p. A value of 0 withdraws the vote, 1 and -1
// replace any previous vote by the same voter. TotalVotes is recomputed
// before returning.
func Cast(p *models.GameProposal, voterID string, value int) error {
	if value < -1 || value > 1 {
		return models.ErrInvalidVote
	}

	idx := -1
	for i, v := range p.Votes {
		if v.PlayerID == voterID {
			idx = i
			break
		}
	}

	switch {
	case value == 0 && idx >= 0:
		p.Votes = append(p.Votes[:idx], p.Votes[idx+1:]...)
	case value == 0:
	case idx >= 0:
		p.Votes[idx].Value = value
	default:
		p.Votes = append(p.Votes, models.Vote{PlayerID: voterID, Value: value})
	}

	p.TotalVotes = Total(p.Votes)
	return nil
}

func Total(votes []models.Vote) int {
	sum := 0
	for _, v := range votes {
		sum += v.Value
	}
	return sum
}

// VoteOf returns the current vote of playerID, 0 if none.
func VoteOf(p *models.GameProposal, playerID string) int {
	for _, v := range p.Votes {
		if v.PlayerID == playerID {
			return v.Value
		}
	}
	return 0
}
