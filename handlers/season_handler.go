package handlers

import (
	"net/http"

	"github.com/Dosada05/community-tournaments/services"
)

type SeasonHandler struct {
	seasonService  services.SeasonService
	rankingService services.RankingService
}

func NewSeasonHandler(ss services.SeasonService, rs services.RankingService) *SeasonHandler {
	return &SeasonHandler{
		seasonService:  ss,
		rankingService: rs,
	}
}

func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSeasonInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"seasons": seasons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Current возвращает сезон с наибольшим номером.
func (h *SeasonHandler) Current(w http.ResponseWriter, r *http.Request) {
	season, err := h.seasonService.Current(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.seasonService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.seasonService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SeasonHandler) AddTournament(w http.ResponseWriter, r *http.Request) {
	seasonID, tournamentID, ok := seasonAndTournament(w, r)
	if !ok {
		return
	}

	season, err := h.seasonService.AddTournament(r.Context(), seasonID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) RemoveTournament(w http.ResponseWriter, r *http.Request) {
	seasonID, tournamentID, ok := seasonAndTournament(w, r)
	if !ok {
		return
	}

	season, err := h.seasonService.RemoveTournament(r.Context(), seasonID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Ranking godoc
// @Summary Рейтинг игроков сезона
// @Tags seasons
// @Produce json
// @Param seasonID path string true "Season ID"
// @Param game_id query string false "Game ID"
// @Success 200 {array} ranking.PlayerRanking
// @Failure 404 {object} map[string]string "Сезон не найден"
// @Router /seasons/{seasonID}/ranking [get]
func (h *SeasonHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rankings, err := h.rankingService.Players(r.Context(), services.RankingInput{
		GameID:   r.URL.Query().Get("game_id"),
		SeasonID: id,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func seasonAndTournament(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return seasonID, tournamentID, true
}
