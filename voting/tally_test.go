package voting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/models"
)

func TestCast_sequenceReturnsToStart(t *testing.T) {
	p := &models.GameProposal{Votes: []models.Vote{{PlayerID: "other", Value: 1}}, TotalVotes: 1}

	require.NoError(t, Cast(p, "v", 1))
	assert.Equal(t, 2, p.TotalVotes)
	require.NoError(t, Cast(p, "v", -1))
	assert.Equal(t, 0, p.TotalVotes)
	require.NoError(t, Cast(p, "v", 0))
	assert.Equal(t, 1, p.TotalVotes)
	assert.Len(t, p.Votes, 1)
}

func TestCast_distinctVoters(t *testing.T) {
	p := &models.GameProposal{}
	for i, v := range []int{1, 1, -1} {
		require.NoError(t, Cast(p, string(rune('a'+i)), v))
	}
	assert.Equal(t, 1, p.TotalVotes)
	assert.Len(t, p.Votes, 3)
}

func TestCast_atMostOneVotePerPlayer(t *testing.T) {
	p := &models.GameProposal{}
	require.NoError(t, Cast(p, "v", 1))
	require.NoError(t, Cast(p, "v", 1))
	require.NoError(t, Cast(p, "v", -1))

	assert.Len(t, p.Votes, 1)
	assert.Equal(t, -1, p.TotalVotes)
	assert.Equal(t, -1, VoteOf(p, "v"))
}

func TestCast_withdrawWithoutVote(t *testing.T) {
	p := &models.GameProposal{}
	require.NoError(t, Cast(p, "v", 0))
	assert.Empty(t, p.Votes)
	assert.Zero(t, p.TotalVotes)
}

func TestCast_invalidValue(t *testing.T) {
	tests := map[string]int{"two": 2, "minus two": -2, "large": 100}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			p := &models.GameProposal{}
			err := Cast(p, "v", value)
			assert.ErrorIs(t, err, models.ErrInvalidVote)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))
			assert.Empty(t, p.Votes)
		})
	}
}
