package mocktwitch

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Dosada05/community-tournaments/integrations/twitch"
)

type Client struct {
	mock.Mock
}

func (c *Client) LiveStreams(ctx context.Context, logins []string) ([]twitch.Stream, error) {
	args := c.Called(ctx, logins)

	var res []twitch.Stream
	if args.Get(0) != nil {
		res = args.Get(0).([]twitch.Stream)
	}

	return res, args.Error(1)
}
