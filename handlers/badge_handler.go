package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/services"
)

type BadgeHandler struct {
	badgeService services.BadgeService
}

func NewBadgeHandler(bs services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: bs}
}

func (h *BadgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBadgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	badge, err := h.badgeService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"badge": badge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BadgeHandler) List(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badgeService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"badges": badges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BadgeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	badge, err := h.badgeService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"badge": badge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete удаляет значок и отзывает его у всех игроков.
func (h *BadgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.badgeService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BadgeHandler) Grant(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, h.badgeService.Grant)
}

func (h *BadgeHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, h.badgeService.Revoke)
}

func (h *BadgeHandler) assign(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, badgeID, playerID string) (*models.Player, error)) {
	badgeID, err := getIDFromURL(r, "badgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := apply(r.Context(), badgeID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Award запускает выдачу значков вручную, не дожидаясь планировщика.
func (h *BadgeHandler) Award(w http.ResponseWriter, r *http.Request) {
	granted, err := h.badgeService.AwardBadges(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"granted": granted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
