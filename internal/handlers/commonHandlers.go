package handlers

import (
	"net/http"

	"bookmark/internal/database"
	"bookmark/internal/utils"
)

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

func (h *CommonHandler) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := h.db.Health()
	code := http.StatusOK
	if _, down := health["error"]; down {
		code = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, code, health)
}
