package handlers

import (
	"net/http"

	"github.com/Dosada05/community-tournaments/middleware"
	"github.com/Dosada05/community-tournaments/services"
)

type PlayerHandler struct {
	playerService  services.PlayerService
	rankingService services.RankingService
}

func NewPlayerHandler(ps services.PlayerService, rs services.RankingService) *PlayerHandler {
	return &PlayerHandler{
		playerService:  ps,
		rankingService: rs,
	}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create godoc
// @Summary Создать игрока
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.CreatePlayerInput true "Игрок"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 409 {object} map[string]string "Имя уже занято"
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByDiscordID ищет игрока по идентификатору Discord (используется ботом).
func (h *PlayerHandler) GetByDiscordID(w http.ResponseWriter, r *http.Request) {
	player, err := h.playerService.GetByDiscordID(r.Context(), chiParam(r, "discordID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if !middleware.CanActAs(r.Context(), id) {
		forbiddenResponse(w, r, "operation not allowed for the current user")
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats godoc
// @Summary Статистика игрока
// @Tags players
// @Produce json
// @Param playerID path string true "Player ID"
// @Param game_id query string false "Только турниры по этой игре"
// @Success 200 {object} ranking.PlayerStats
// @Failure 404 {object} map[string]string "Игрок не найден"
// @Router /players/{playerID}/stats [get]
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.rankingService.PlayerStats(r.Context(), id, r.URL.Query().Get("game_id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LiveStreams возвращает игроков, которые сейчас ведут трансляцию на Twitch.
func (h *PlayerHandler) LiveStreams(w http.ResponseWriter, r *http.Request) {
	streams, err := h.playerService.LiveStreams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"streams": streams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
