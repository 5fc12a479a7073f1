package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/notifications"
)

func TestProposalService_CreateAndVote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.discord.On("PostProposal", mock.Anything, mock.Anything).Return("msg-1", nil).Once()
	f.discord.On("UpdateProposal", mock.Anything, mock.MatchedBy(func(p *models.GameProposal) bool {
		return p.DiscordMessageID != nil && *p.DiscordMessageID == "msg-1"
	})).Return(nil).Times(3)

	a, b, c := f.player(t, "alice"), f.player(t, "bob"), f.player(t, "carol")
	proposal, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Among Us"})
	require.NoError(t, err)
	assert.Equal(t, "among-us", proposal.Slug)
	assert.Equal(t, models.ProposalPending, proposal.Status)
	assert.Equal(t, "alice", proposal.Proposer.Username)
	require.NotNil(t, proposal.DiscordMessageID)
	assert.Equal(t, "msg-1", *proposal.DiscordMessageID)

	for _, v := range []struct {
		voter string
		value int
	}{{a.ID, 1}, {b.ID, 1}, {c.ID, -1}} {
		proposal, err = f.svc.Proposals.Vote(ctx, proposal.ID, v.voter, v.value)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, proposal.TotalVotes)
	assert.Len(t, proposal.Votes, 3)

	_, err = f.svc.Proposals.Vote(ctx, proposal.ID, a.ID, 2)
	require.ErrorIs(t, err, models.ErrInvalidVote)
	_, err = f.svc.Proposals.Vote(ctx, proposal.ID, "ghost", 1)
	require.ErrorIs(t, err, models.ErrPlayerNotFound)
}

func TestProposalService_Create_duplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allowCollaborators()
	a := f.player(t, "alice")
	f.game(t, "Rocket League")

	_, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "rocket league"})
	require.ErrorIs(t, err, models.ErrProposalExists)

	_, err = f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Apex Legends"})
	require.NoError(t, err)
	_, err = f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "APEX  legends"})
	require.ErrorIs(t, err, models.ErrConflict)

	_, err = f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "  "})
	require.ErrorIs(t, err, models.ErrNameRequired)
	_, err = f.svc.Proposals.Create(ctx, "ghost", CreateProposalInput{Name: "Halo"})
	require.ErrorIs(t, err, models.ErrPlayerNotFound)
}

func TestProposalService_discordFailureIsolated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.discord.On("PostProposal", mock.Anything, mock.Anything).Return("", errors.New("discord down"))
	f.discord.On("UpdateProposal", mock.Anything, mock.Anything).Return(errors.New("discord down"))

	a := f.player(t, "alice")
	proposal, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Portal 2"})
	require.NoError(t, err)
	assert.Nil(t, proposal.DiscordMessageID)

	proposal, err = f.svc.Proposals.Vote(ctx, proposal.ID, a.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, proposal.TotalVotes)
}

func TestProposalService_SetStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.player(t, "alice")
	f.notifier.On("Notify", mock.Anything, []string{a.ID}, mock.MatchedBy(func(n notifications.Notification) bool {
		return n.Kind == notifications.KindProposalApproved
	})).Return(nil).Once()
	f.allowCollaborators()

	proposal, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Stardew Valley", Description: "farming"})
	require.NoError(t, err)

	_, err = f.svc.Proposals.SetStatus(ctx, proposal.ID, "maybe")
	require.ErrorIs(t, err, models.ErrInvalidStatus)

	proposal, err = f.svc.Proposals.SetStatus(ctx, proposal.ID, models.ProposalApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalApproved, proposal.Status)

	game, err := f.store.Games.GetBySlug(ctx, "stardew-valley")
	require.NoError(t, err)
	assert.Equal(t, "Stardew Valley", game.Name)
	assert.Equal(t, "farming", game.Description)

	_, err = f.svc.Proposals.Vote(ctx, proposal.ID, a.ID, 1)
	require.ErrorIs(t, err, models.ErrProposalNotPending)

	games, err := f.svc.Games.List(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestProposalService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allowCollaborators()
	a, b := f.player(t, "alice"), f.player(t, "bob")

	low, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Pong"})
	require.NoError(t, err)
	high, err := f.svc.Proposals.Create(ctx, b.ID, CreateProposalInput{Name: "Doom"})
	require.NoError(t, err)
	_, err = f.svc.Proposals.Vote(ctx, high.ID, a.ID, 1)
	require.NoError(t, err)

	views, err := f.svc.Proposals.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, high.ID, views[0].ID)
	assert.Equal(t, "bob", views[0].Proposer.Username)
	assert.Equal(t, low.ID, views[1].ID)

	rejected := models.ProposalRejected
	views, err = f.svc.Proposals.List(ctx, &rejected)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestProposalService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.discord.On("PostProposal", mock.Anything, mock.Anything).Return("msg-9", nil).Once()
	f.discord.On("DeleteProposal", mock.Anything, "msg-9").Return(nil).Once()

	a := f.player(t, "alice")
	proposal, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Celeste"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Proposals.Delete(ctx, proposal.ID))
	_, err = f.svc.Proposals.GetByID(ctx, proposal.ID)
	require.ErrorIs(t, err, models.ErrProposalNotFound)
}

func TestProposalService_UploadImage_disabled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allowCollaborators()
	a := f.player(t, "alice")
	proposal, err := f.svc.Proposals.Create(ctx, a.ID, CreateProposalInput{Name: "Hades"})
	require.NoError(t, err)

	_, err = f.svc.Proposals.UploadImage(ctx, proposal.ID, nil, 10, "image/png")
	require.ErrorIs(t, err, ErrUploadsDisabled)
}
