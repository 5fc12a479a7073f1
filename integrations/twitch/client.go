// Package twitch queries the Helix API for live streams of linked players.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	HelixURL = "https://api.twitch.tv/helix"
	TokenURL = "https://id.twitch.tv/oauth2/token"

	// Helix accepts at most 100 user_login values per request.
	maxLoginsPerRequest = 100
)

type Stream struct {
	UserLogin    string    `json:"user_login"`
	UserName     string    `json:"user_name"`
	GameName     string    `json:"game_name"`
	Title        string    `json:"title"`
	ViewerCount  int       `json:"viewer_count"`
	StartedAt    time.Time `json:"started_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

type Client interface {
	// LiveStreams returns the streams currently live among the given logins.
	LiveStreams(ctx context.Context, logins []string) ([]Stream, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	URL          string // defaults to HelixURL
	TokenURL     string // defaults to TokenURL
}

type client struct {
	url        string
	clientID   string
	httpClient *http.Client
}

// New returns a client authenticated with an app access token. The token is
// fetched lazily and refreshed by the oauth2 transport.
func New(ctx context.Context, cfg Config) Client {
	apiURL := cfg.URL
	if apiURL == "" {
		apiURL = HelixURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = TokenURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = 10 * time.Second

	return &client{
		url:        apiURL,
		clientID:   cfg.ClientID,
		httpClient: httpClient,
	}
}

type streamsResponse struct {
	Data []Stream `json:"data"`
}

func (c *client) LiveStreams(ctx context.Context, logins []string) ([]Stream, error) {
	streams := make([]Stream, 0)
	for start := 0; start < len(logins); start += maxLoginsPerRequest {
		end := start + maxLoginsPerRequest
		if end > len(logins) {
			end = len(logins)
		}
		batch, err := c.streams(ctx, logins[start:end])
		if err != nil {
			return nil, err
		}
		streams = append(streams, batch...)
	}
	return streams, nil
}

func (c *client) streams(ctx context.Context, logins []string) ([]Stream, error) {
	q := url.Values{}
	for _, login := range logins {
		q.Add("user_login", login)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/streams?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Client-Id", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed streamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from twitch: %w", err)
	}
	return parsed.Data, nil
}

type noop struct{}

// NewNoop returns a client that never reports live streams.
func NewNoop() Client { return noop{} }

func (noop) LiveStreams(context.Context, []string) ([]Stream, error) { return []Stream{}, nil }
