package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/community-tournaments/middleware"
	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/services"
	"github.com/Dosada05/community-tournaments/storage"
)

type ProposalHandler struct {
	proposalService services.ProposalService
}

func NewProposalHandler(ps services.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: ps}
}

// Create godoc
// @Summary Предложить игру
// @Description Предложение публикуется в Discord, сообщество голосует за него.
// @Tags proposals
// @Accept json
// @Produce json
// @Param body body services.CreateProposalInput true "Предложение"
// @Success 201 {object} services.ProposalView
// @Failure 409 {object} map[string]string "Игра или предложение уже существует"
// @Security BearerAuth
// @Router /proposals [post]
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	proposerID, err := currentPlayerID(r)
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateProposalInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	proposal, err := h.proposalService.Create(r.Context(), proposerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"proposal": proposal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.ProposalStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.ProposalStatus(raw)
		if !s.Valid() {
			badRequestResponse(w, r, models.ErrInvalidStatus)
			return
		}
		status = &s
	}

	proposals, err := h.proposalService.List(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"proposals": proposals}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProposalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "proposalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	proposal, err := h.proposalService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Vote godoc
// @Summary Проголосовать за предложение
// @Description value: 1 за, -1 против, 0 отзывает голос.
// @Tags proposals
// @Accept json
// @Produce json
// @Param proposalID path string true "Proposal ID"
// @Param body body object{value=int} true "Голос"
// @Success 200 {object} services.ProposalView
// @Failure 400 {object} map[string]string "Неверное значение"
// @Failure 409 {object} map[string]string "Голосование закрыто"
// @Security BearerAuth
// @Router /proposals/{proposalID}/vote [post]
func (h *ProposalHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "proposalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	playerID, err := currentPlayerID(r)
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var req struct {
		Value *int `json:"value"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Value == nil {
		badRequestResponse(w, r, errors.New("value is required"))
		return
	}

	proposal, err := h.proposalService.Vote(r.Context(), id, playerID, *req.Value)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProposalHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "proposalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req struct {
		Status models.ProposalStatus `json:"status"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	proposal, err := h.proposalService.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "proposalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.proposalService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProposalHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "proposalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, size, contentType, err := imageFromForm(w, r, "image", storage.MaxImageSize)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	proposal, err := h.proposalService.UploadImage(r.Context(), id, file, size, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// currentPlayerID возвращает игрока из токена. Токен администратора игроком не является.
func currentPlayerID(r *http.Request) (string, error) {
	if middleware.IsAdmin(r.Context()) {
		return "", errors.New("a player token is required")
	}
	return middleware.GetSubjectFromContext(r.Context())
}
