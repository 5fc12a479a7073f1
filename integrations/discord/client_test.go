package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/models"
)

type request struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

func newServer(t *testing.T, handler func(w http.ResponseWriter, r request)) (*httptest.Server, *[]request) {
	var (
		mu       sync.Mutex
		requests []request
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req.Body)
		}
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestClient_CreateVoiceChannels(t *testing.T) {
	srv, requests := newServer(t, func(w http.ResponseWriter, r request) {
		if r.Body["name"] == "Broken" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "chan-" + r.Body["name"].(string)})
	})

	c := New(Config{BotToken: "tok", GuildID: "g1", VoiceCategoryID: "cat", URL: srv.URL})
	ids, err := c.CreateVoiceChannels(context.Background(), []string{"Alpha", "Broken", "Beta"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
	assert.Equal(t, []string{"chan-Alpha", "chan-Beta"}, ids)

	require.Len(t, *requests, 3)
	first := (*requests)[0]
	assert.Equal(t, http.MethodPost, first.Method)
	assert.Equal(t, "/guilds/g1/channels", first.Path)
	assert.Equal(t, "Bot tok", first.Auth)
	assert.Equal(t, float64(channelTypeVoice), first.Body["type"])
	assert.Equal(t, "cat", first.Body["parent_id"])
}

func TestClient_ProposalLifecycle(t *testing.T) {
	srv, requests := newServer(t, func(w http.ResponseWriter, r request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"id": "msg-1"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	c := New(Config{BotToken: "tok", ProposalChannelID: "props", URL: srv.URL})
	ctx := context.Background()

	p := &models.GameProposal{Name: "Chess", Status: models.ProposalPending, TotalVotes: 3}
	id, err := c.PostProposal(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	p.DiscordMessageID = &id
	p.TotalVotes = -1
	require.NoError(t, c.UpdateProposal(ctx, p))
	require.NoError(t, c.DeleteProposal(ctx, id))

	require.Len(t, *requests, 3)
	assert.Equal(t, "/channels/props/messages", (*requests)[0].Path)
	assert.Equal(t, http.MethodPatch, (*requests)[1].Method)
	assert.Equal(t, "/channels/props/messages/msg-1", (*requests)[1].Path)

	embeds := (*requests)[1].Body["embeds"].([]interface{})
	fields := embeds[0].(map[string]interface{})["fields"].([]interface{})
	assert.Equal(t, "-1", fields[0].(map[string]interface{})["value"])

	assert.Equal(t, http.MethodDelete, (*requests)[2].Method)
}

func TestClient_UpdateWithoutMessageIsNoop(t *testing.T) {
	srv, requests := newServer(t, func(w http.ResponseWriter, r request) {})
	c := New(Config{URL: srv.URL})
	require.NoError(t, c.UpdateProposal(context.Background(), &models.GameProposal{Name: "x"}))
	assert.Empty(t, *requests)
}
