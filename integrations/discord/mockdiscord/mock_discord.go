package mockdiscord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Dosada05/community-tournaments/models"
)

type Client struct {
	mock.Mock
}

func (c *Client) CreateVoiceChannels(ctx context.Context, names []string) ([]string, error) {
	args := c.Called(ctx, names)

	var res []string
	if args.Get(0) != nil {
		res = args.Get(0).([]string)
	}

	return res, args.Error(1)
}

func (c *Client) DeleteChannels(ctx context.Context, channelIDs []string) error {
	args := c.Called(ctx, channelIDs)
	return args.Error(0)
}

func (c *Client) PostProposal(ctx context.Context, p *models.GameProposal) (string, error) {
	args := c.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (c *Client) UpdateProposal(ctx context.Context, p *models.GameProposal) error {
	args := c.Called(ctx, p)
	return args.Error(0)
}

func (c *Client) DeleteProposal(ctx context.Context, messageID string) error {
	args := c.Called(ctx, messageID)
	return args.Error(0)
}
