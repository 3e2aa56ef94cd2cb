package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"bookmark/internal/services"
	"bookmark/internal/utils"
)

type MenuHandler struct {
	service services.MenuService
}

func NewMenuHandler(service services.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.GetMenu(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error building menu")
		utils.SendJSONError(w, "failed to build menu", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, menu)
}
