package handlers

import (
	"net/http"

	"github.com/Dosada05/community-tournaments/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rs services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rs}
}

// Players godoc
// @Summary Общий рейтинг игроков
// @Description Считается по завершенным турнирам. Без season_id учитываются все сезоны.
// @Tags rankings
// @Produce json
// @Param game_id query string false "Game ID"
// @Param season_id query string false "Season ID"
// @Success 200 {array} ranking.PlayerRanking
// @Router /rankings/players [get]
func (h *RankingHandler) Players(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rankings, err := h.rankingService.Players(r.Context(), services.RankingInput{
		GameID:   query.Get("game_id"),
		SeasonID: query.Get("season_id"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) Champions(w http.ResponseWriter, r *http.Request) {
	champions, err := h.rankingService.Champions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"champions": champions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
