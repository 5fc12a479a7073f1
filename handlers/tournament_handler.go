package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/community-tournaments/middleware"
	"github.com/Dosada05/community-tournaments/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// Create godoc
// @Summary Создать турнир
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.CreateTournamentInput true "Турнир"
// @Success 201 {object} services.TournamentView
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Игра или игрок не найдены"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID godoc
// @Summary Получить турнир
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} services.TournamentView
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param game_id query string false "Game ID"
// @Param season_id query string false "Season ID"
// @Param player_id query string false "Player ID"
// @Param finished query bool false "Только завершенные / незавершенные"
// @Success 200 {array} services.TournamentView
// @Router /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	finished, err := parseBoolQuery(r, "finished")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.List(r.Context(), services.ListTournamentsInput{
		GameID:   query.Get("game_id"),
		SeasonID: query.Get("season_id"),
		PlayerID: query.Get("player_id"),
		Finished: finished,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// tournamentAndPlayer читает оба идентификатора и проверяет, что текущий
// пользователь может действовать от имени игрока.
func tournamentAndPlayer(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	if !middleware.CanActAs(r.Context(), playerID) {
		mapServiceErrorToHTTP(w, r, services.ErrForbiddenOperation)
		return "", "", false
	}
	return tournamentID, playerID, true
}

// Register godoc
// @Summary Записать игрока на турнир
// @Tags tournaments
// @Description Игрок записывается сам, администратор может записать любого игрока.
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} services.TournamentView
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Турнир или игрок не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/players/{playerID} [post]
func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID, playerID, ok := tournamentAndPlayer(w, r)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.Register(r.Context(), tournamentID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	tournamentID, playerID, ok := tournamentAndPlayer(w, r)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.Unregister(r.Context(), tournamentID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) SetCheckIn(w http.ResponseWriter, r *http.Request) {
	tournamentID, playerID, ok := tournamentAndPlayer(w, r)
	if !ok {
		return
	}

	var req struct {
		CheckedIn *bool `json:"checked_in"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.CheckedIn == nil {
		badRequestResponse(w, r, errors.New("checked_in is required"))
		return
	}

	tournament, err := h.tournamentService.SetCheckIn(r.Context(), tournamentID, playerID, *req.CheckedIn)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayers заменяет состав турнира целиком.
func (h *TournamentHandler) UpdatePlayers(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req struct {
		Players []string `json:"players"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdatePlayers(r.Context(), id, req.Players)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateTeams godoc
// @Summary Сформировать команды
// @Tags tournaments
// @Description Случайно распределяет состав по num_teams командам и создает голосовые каналы в Discord.
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body services.GenerateTeamsInput true "Количество и названия команд"
// @Success 200 {object} services.TournamentView
// @Failure 400 {object} map[string]string "Неверное количество команд"
// @Failure 409 {object} map[string]string "Турнир уже завершен"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TournamentHandler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateTeamsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GenerateTeams(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) DeleteTeamChannels(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.DeleteTeamChannels(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) UpdateTeamRanking(w http.ResponseWriter, r *http.Request) {
	h.updateTeam(w, r, "ranking", h.tournamentService.UpdateTeamRanking)
}

func (h *TournamentHandler) UpdateTeamScore(w http.ResponseWriter, r *http.Request) {
	h.updateTeam(w, r, "score", h.tournamentService.UpdateTeamScore)
}

type teamUpdateFunc func(ctx context.Context, tournamentID, teamID string, value int) (*services.TournamentView, error)

func (h *TournamentHandler) updateTeam(w http.ResponseWriter, r *http.Request, field string, update teamUpdateFunc) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req map[string]*int
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	value, ok := req[field]
	if !ok || value == nil || len(req) != 1 {
		badRequestResponse(w, r, fmt.Errorf("body must contain only %q", field))
		return
	}

	tournament, err := update(r.Context(), tournamentID, teamID, *value)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkFinished завершает турнир, если у какой-либо команды уже есть место.
func (h *TournamentHandler) MarkFinished(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tournamentService.MarkFinished)
}

// Finish завершает турнир без проверки результатов.
func (h *TournamentHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tournamentService.Finish)
}

func (h *TournamentHandler) Unfinish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.tournamentService.Unfinish)
}

func (h *TournamentHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id string) (*services.TournamentView, error)) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := apply(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
