// Package discord talks to the Discord REST API with a bot token: voice
// channels for tournament teams and embeds announcing game proposals.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dosada05/community-tournaments/models"
)

const APIURL = "https://discord.com/api/v10"

const (
	channelTypeVoice = 2
	embedColor       = 0x5865F2
)

type Client interface {
	// CreateVoiceChannels creates one voice channel per name and returns the
	// ids of the channels that were created, even when some failed.
	CreateVoiceChannels(ctx context.Context, names []string) ([]string, error)
	DeleteChannels(ctx context.Context, channelIDs []string) error
	PostProposal(ctx context.Context, p *models.GameProposal) (string, error)
	UpdateProposal(ctx context.Context, p *models.GameProposal) error
	DeleteProposal(ctx context.Context, messageID string) error
}

type Config struct {
	BotToken          string
	GuildID           string
	VoiceCategoryID   string
	ProposalChannelID string
	URL               string // defaults to APIURL
}

type client struct {
	url        string
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config) Client {
	url := cfg.URL
	if url == "" {
		url = APIURL
	}
	return &client{
		url: url,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type channel struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedImage struct {
	URL string `json:"url"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Image       *embedImage  `json:"image,omitempty"`
	Fields      []embedField `json:"fields"`
}

type message struct {
	ID     string  `json:"id,omitempty"`
	Embeds []embed `json:"embeds"`
}

func (c *client) CreateVoiceChannels(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	var errs []error
	for _, name := range names {
		var created channel
		err := c.do(ctx, http.MethodPost, fmt.Sprintf("/guilds/%s/channels", c.cfg.GuildID),
			channel{Name: name, Type: channelTypeVoice, ParentID: c.cfg.VoiceCategoryID}, &created)
		if err != nil {
			errs = append(errs, fmt.Errorf("voice channel %q: %w", name, err))
			continue
		}
		ids = append(ids, created.ID)
	}
	return ids, errors.Join(errs...)
}

func (c *client) DeleteChannels(ctx context.Context, channelIDs []string) error {
	var errs []error
	for _, id := range channelIDs {
		if err := c.do(ctx, http.MethodDelete, "/channels/"+id, nil, nil); err != nil {
			errs = append(errs, fmt.Errorf("channel %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (c *client) PostProposal(ctx context.Context, p *models.GameProposal) (string, error) {
	var created message
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", c.cfg.ProposalChannelID), proposalMessage(p), &created)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *client) UpdateProposal(ctx context.Context, p *models.GameProposal) error {
	if p.DiscordMessageID == nil {
		return nil
	}
	path := fmt.Sprintf("/channels/%s/messages/%s", c.cfg.ProposalChannelID, *p.DiscordMessageID)
	return c.do(ctx, http.MethodPatch, path, proposalMessage(p), nil)
}

func (c *client) DeleteProposal(ctx context.Context, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", c.cfg.ProposalChannelID, messageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func proposalMessage(p *models.GameProposal) message {
	e := embed{
		Title:       p.Name,
		Description: p.Description,
		Color:       embedColor,
		Fields: []embedField{
			{Name: "Votes", Value: fmt.Sprintf("%+d", p.TotalVotes), Inline: true},
			{Name: "Status", Value: string(p.Status), Inline: true},
		},
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		e.Image = &embedImage{URL: *p.ImageURL}
	}
	return message{Embeds: []embed{e}}
}

func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding discord request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d from discord: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error parsing response from discord: %w", err)
		}
	}
	return nil
}

type noop struct{}

// NewNoop returns a client used when no bot token is configured.
func NewNoop() Client { return noop{} }

func (noop) CreateVoiceChannels(context.Context, []string) ([]string, error)    { return nil, nil }
func (noop) DeleteChannels(context.Context, []string) error                     { return nil }
func (noop) PostProposal(context.Context, *models.GameProposal) (string, error) { return "", nil }
func (noop) UpdateProposal(context.Context, *models.GameProposal) error         { return nil }
func (noop) DeleteProposal(context.Context, string) error                       { return nil }
