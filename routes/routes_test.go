package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/community-tournaments/handlers"
	"github.com/Dosada05/community-tournaments/integrations/discord"
	"github.com/Dosada05/community-tournaments/integrations/twitch"
	"github.com/Dosada05/community-tournaments/notifications"
	"github.com/Dosada05/community-tournaments/realtime"
	"github.com/Dosada05/community-tournaments/repositories"
	"github.com/Dosada05/community-tournaments/services"
)

const adminPassword = "s3cret-admin"

type testApp struct {
	t      *testing.T
	router http.Handler
	admin  string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC))
	hub := realtime.NewHub(logger)
	secret := []byte("routes-test-secret")

	svc := services.New(services.Dependencies{
		Store:             repositories.NewMemoryStore(),
		Discord:           discord.NewNoop(),
		Twitch:            twitch.NewNoop(),
		Notifier:          notifications.NewHubNotifier(hub, clock, logger),
		Hub:               hub,
		Clock:             clock,
		Rand:              rand.New(rand.NewSource(1)),
		Logger:            logger,
		AdminPasswordHash: string(hash),
		JWTSecret:         secret,
		ReminderLeadTime:  time.Hour,
	})

	router := chi.NewRouter()
	SetupRoutes(router, Options{JWTSecret: secret, AllowedOrigins: []string{"*"}}, Handlers{
		Auth:        handlers.NewAuthHandler(svc.Auth),
		Players:     handlers.NewPlayerHandler(svc.Players, svc.Rankings),
		Tournaments: handlers.NewTournamentHandler(svc.Tournaments),
		Seasons:     handlers.NewSeasonHandler(svc.Seasons, svc.Rankings),
		Rankings:    handlers.NewRankingHandler(svc.Rankings),
		Games:       handlers.NewGameHandler(svc.Games),
		Proposals:   handlers.NewProposalHandler(svc.Proposals),
		Badges:      handlers.NewBadgeHandler(svc.Badges),
		WebSocket:   handlers.NewWebSocketHandler(hub, svc.Tournaments, nil, logger),
	})

	app := &testApp{t: t, router: router}
	var login struct {
		Token string `json:"token"`
	}
	app.expect(http.MethodPost, "/api/auth/login", "", map[string]string{"password": adminPassword}, http.StatusOK, &login)
	require.NotEmpty(t, login.Token)
	app.admin = login.Token
	return app
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// expect выполняет запрос, проверяет статус и раскладывает тело ответа в dst.
func (a *testApp) expect(method, path, token string, body interface{}, status int, dst interface{}) {
	a.t.Helper()
	rec := a.do(method, path, token, body)
	require.Equal(a.t, status, rec.Code, "%s %s: %s", method, path, rec.Body.String())
	if dst != nil {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), dst))
	}
}

type idResponse struct {
	ID string `json:"id"`
}

func (a *testApp) createPlayer(username string) string {
	a.t.Helper()
	var resp struct {
		Player idResponse `json:"player"`
	}
	a.expect(http.MethodPost, "/api/players", a.admin, map[string]string{"username": username}, http.StatusCreated, &resp)
	return resp.Player.ID
}

func (a *testApp) playerToken(playerID string) string {
	a.t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	a.expect(http.MethodPost, "/api/players/"+playerID+"/token", a.admin, nil, http.StatusOK, &resp)
	return resp.Token
}

type tournamentResponse struct {
	Tournament struct {
		ID       string          `json:"id"`
		Finished bool            `json:"finished"`
		Players  []idResponse    `json:"players"`
		CheckIns map[string]bool `json:"check_ins"`
		Teams    []struct {
			ID          string       `json:"id"`
			DisplayName string       `json:"display_name"`
			Players     []idResponse `json:"players"`
			Ranking     int          `json:"ranking"`
		} `json:"teams"`
	} `json:"tournament"`
}

func TestAdminLogin(t *testing.T) {
	app := newTestApp(t)

	app.expect(http.MethodPost, "/api/auth/login", "", map[string]string{"password": "wrong"}, http.StatusUnauthorized, nil)
	app.expect(http.MethodPost, "/api/auth/login", "", map[string]string{}, http.StatusBadRequest, nil)
	app.expect(http.MethodPost, "/api/auth/login", "", map[string]string{"password": "x", "extra": "y"}, http.StatusBadRequest, nil)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	app := newTestApp(t)
	playerID := app.createPlayer("mira")
	token := app.playerToken(playerID)

	app.expect(http.MethodPost, "/api/games", "", map[string]string{"name": "Valorant"}, http.StatusUnauthorized, nil)
	app.expect(http.MethodPost, "/api/games", "not-a-jwt", map[string]string{"name": "Valorant"}, http.StatusUnauthorized, nil)
	app.expect(http.MethodPost, "/api/games", token, map[string]string{"name": "Valorant"}, http.StatusForbidden, nil)
	app.expect(http.MethodPost, "/api/games", app.admin, map[string]string{"name": "Valorant"}, http.StatusCreated, nil)
}

func TestTournamentFlow(t *testing.T) {
	app := newTestApp(t)

	var game struct {
		Game idResponse `json:"game"`
	}
	app.expect(http.MethodPost, "/api/games", app.admin, map[string]string{"name": "Rocket League"}, http.StatusCreated, &game)

	players := []string{
		app.createPlayer("alice"),
		app.createPlayer("bob"),
		app.createPlayer("carol"),
		app.createPlayer("dave"),
	}

	var created tournamentResponse
	app.expect(http.MethodPost, "/api/tournaments", app.admin, map[string]interface{}{
		"name":    "Friday Cup",
		"game_id": game.Game.ID,
		"date":    time.Date(2025, 3, 21, 20, 0, 0, 0, time.UTC),
		"players": players[:3],
	}, http.StatusCreated, &created)
	tournamentID := created.Tournament.ID
	require.Len(t, created.Tournament.Players, 3)
	base := "/api/tournaments/" + tournamentID

	// Игрок записывает только себя
	daveToken := app.playerToken(players[3])
	app.expect(http.MethodPost, base+"/players/"+players[3], "", nil, http.StatusUnauthorized, nil)
	app.expect(http.MethodPost, base+"/players/"+players[0], daveToken, nil, http.StatusForbidden, nil)

	var registered tournamentResponse
	app.expect(http.MethodPost, base+"/players/"+players[3], daveToken, nil, http.StatusOK, &registered)
	assert.Len(t, registered.Tournament.Players, 4)

	var checked tournamentResponse
	app.expect(http.MethodPut, base+"/players/"+players[3]+"/check-in", daveToken, map[string]bool{"checked_in": true}, http.StatusOK, &checked)
	assert.True(t, checked.Tournament.CheckIns[players[3]])
	app.expect(http.MethodPut, base+"/players/"+players[3]+"/check-in", daveToken, map[string]string{}, http.StatusBadRequest, nil)

	app.expect(http.MethodPost, base+"/teams", app.admin, map[string]int{"num_teams": 0}, http.StatusBadRequest, nil)

	var teams tournamentResponse
	app.expect(http.MethodPost, base+"/teams", app.admin, map[string]int{"num_teams": 2}, http.StatusOK, &teams)
	require.Len(t, teams.Tournament.Teams, 2)
	assert.Len(t, teams.Tournament.Teams[0].Players, 2)
	assert.Len(t, teams.Tournament.Teams[1].Players, 2)
	winner := teams.Tournament.Teams[0]

	app.expect(http.MethodPost, base+"/finish", app.admin, nil, http.StatusConflict, nil)

	teamPath := base + "/teams/" + winner.ID
	app.expect(http.MethodPut, teamPath+"/ranking", app.admin, map[string]int{"ranking": -1}, http.StatusBadRequest, nil)
	app.expect(http.MethodPut, teamPath+"/ranking", app.admin, map[string]int{"ranking": 1, "score": 3}, http.StatusBadRequest, nil)
	app.expect(http.MethodPut, teamPath+"/ranking", app.admin, map[string]int{"ranking": 1}, http.StatusOK, nil)

	var scored tournamentResponse
	app.expect(http.MethodPut, teamPath+"/score", app.admin, map[string]int{"score": 8}, http.StatusOK, &scored)
	assert.Contains(t, scored.Tournament.Teams[0].DisplayName, "(8 Pts)")

	var finished tournamentResponse
	app.expect(http.MethodPost, base+"/finish", app.admin, nil, http.StatusOK, &finished)
	assert.True(t, finished.Tournament.Finished)
	app.expect(http.MethodPost, base+"/teams", app.admin, map[string]int{"num_teams": 2}, http.StatusConflict, nil)

	var ranking struct {
		Ranking []struct {
			Player           idResponse `json:"player"`
			TotalTournaments int        `json:"total_tournaments"`
			TotalVictories   int        `json:"total_victories"`
		} `json:"ranking"`
	}
	app.expect(http.MethodGet, "/api/rankings/players?game_id="+game.Game.ID, "", nil, http.StatusOK, &ranking)
	require.Len(t, ranking.Ranking, 4)
	victories := 0
	for _, r := range ranking.Ranking {
		assert.Equal(t, 1, r.TotalTournaments)
		victories += r.TotalVictories
	}
	assert.Equal(t, 2, victories)

	var list struct {
		Tournaments []idResponse `json:"tournaments"`
	}
	app.expect(http.MethodGet, "/api/tournaments?finished=true&player_id="+players[3], "", nil, http.StatusOK, &list)
	assert.Len(t, list.Tournaments, 1)
	app.expect(http.MethodGet, "/api/tournaments?finished=maybe", "", nil, http.StatusBadRequest, nil)

	var stats struct {
		Stats struct {
			TotalTournaments int `json:"total_tournaments"`
		} `json:"stats"`
	}
	app.expect(http.MethodGet, "/api/players/"+players[0]+"/stats", "", nil, http.StatusOK, &stats)
	assert.Equal(t, 1, stats.Stats.TotalTournaments)
}

func TestTournamentNotFound(t *testing.T) {
	app := newTestApp(t)

	app.expect(http.MethodGet, "/api/tournaments/not-a-uuid", "", nil, http.StatusBadRequest, nil)
	app.expect(http.MethodGet, "/api/tournaments/"+uuid.NewString(), "", nil, http.StatusNotFound, nil)
	app.expect(http.MethodGet, "/ws/tournaments/"+uuid.NewString(), "", nil, http.StatusNotFound, nil)
}

func TestProposalFlow(t *testing.T) {
	app := newTestApp(t)
	proposer := app.createPlayer("nora")
	voter := app.createPlayer("otto")
	proposerToken := app.playerToken(proposer)
	voterToken := app.playerToken(voter)

	var created struct {
		Proposal struct {
			ID         string     `json:"id"`
			Status     string     `json:"status"`
			TotalVotes int        `json:"total_votes"`
			Proposer   idResponse `json:"proposer"`
		} `json:"proposal"`
	}
	app.expect(http.MethodPost, "/api/proposals", app.admin, map[string]string{"name": "Hades"}, http.StatusUnauthorized, nil)
	app.expect(http.MethodPost, "/api/proposals", proposerToken, map[string]string{"name": "Hades"}, http.StatusCreated, &created)
	assert.Equal(t, "pending", created.Proposal.Status)
	assert.Equal(t, proposer, created.Proposal.Proposer.ID)
	app.expect(http.MethodPost, "/api/proposals", voterToken, map[string]string{"name": "hades"}, http.StatusConflict, nil)

	path := "/api/proposals/" + created.Proposal.ID
	app.expect(http.MethodPost, path+"/vote", voterToken, map[string]int{"value": 2}, http.StatusBadRequest, nil)
	app.expect(http.MethodPost, path+"/vote", voterToken, map[string]int{"value": 1}, http.StatusOK, nil)

	var voted struct {
		Proposal struct {
			TotalVotes int `json:"total_votes"`
		} `json:"proposal"`
	}
	app.expect(http.MethodPost, path+"/vote", proposerToken, map[string]int{"value": 1}, http.StatusOK, &voted)
	assert.Equal(t, 2, voted.Proposal.TotalVotes)

	app.expect(http.MethodPut, path+"/status", voterToken, map[string]string{"status": "approved"}, http.StatusForbidden, nil)
	app.expect(http.MethodPut, path+"/status", app.admin, map[string]string{"status": "approved"}, http.StatusOK, nil)
	app.expect(http.MethodPost, path+"/vote", voterToken, map[string]int{"value": -1}, http.StatusConflict, nil)

	var games struct {
		Games []struct {
			Name string `json:"name"`
		} `json:"games"`
	}
	app.expect(http.MethodGet, "/api/games", "", nil, http.StatusOK, &games)
	require.Len(t, games.Games, 1)
	assert.Equal(t, "Hades", games.Games[0].Name)

	var approved struct {
		Proposals []idResponse `json:"proposals"`
	}
	app.expect(http.MethodGet, "/api/proposals?status=approved", "", nil, http.StatusOK, &approved)
	assert.Len(t, approved.Proposals, 1)
	app.expect(http.MethodGet, "/api/proposals?status=unknown", "", nil, http.StatusBadRequest, nil)
}

func TestSeasonRoutes(t *testing.T) {
	app := newTestApp(t)

	var season struct {
		Season idResponse `json:"season"`
	}
	app.expect(http.MethodPost, "/api/seasons", app.admin, map[string]interface{}{"numero": 1, "name": "Winter"}, http.StatusCreated, &season)
	app.expect(http.MethodPost, "/api/seasons", app.admin, map[string]interface{}{"numero": -1}, http.StatusBadRequest, nil)

	var current struct {
		Season idResponse `json:"season"`
	}
	app.expect(http.MethodGet, "/api/seasons/current", "", nil, http.StatusOK, &current)
	assert.Equal(t, season.Season.ID, current.Season.ID)

	app.expect(http.MethodPost, "/api/seasons/"+season.Season.ID+"/tournaments/"+uuid.NewString(), app.admin, nil, http.StatusNotFound, nil)
	app.expect(http.MethodGet, "/api/seasons/"+season.Season.ID+"/ranking", "", nil, http.StatusOK, nil)
	app.expect(http.MethodGet, "/api/rankings/champions", "", nil, http.StatusOK, nil)
}

func TestSwaggerDoc(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/tournaments/{tournamentID}/teams")
}

func TestLiveStreamsWithoutTwitch(t *testing.T) {
	app := newTestApp(t)
	app.createPlayer("streamer")

	var resp struct {
		Streams []interface{} `json:"streams"`
	}
	app.expect(http.MethodGet, "/api/streams", "", nil, http.StatusOK, &resp)
	assert.Empty(t, resp.Streams)
}
