package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"bookmark/internal/models"
	"bookmark/internal/uistate"
	"bookmark/internal/utils"
)

type UIHandler struct {
	state *uistate.State
}

func NewUIHandler(state *uistate.State) *UIHandler {
	return &UIHandler{state: state}
}

func (h *UIHandler) themeResponse() models.ThemeResponse {
	return models.ThemeResponse{
		Theme:     string(h.state.Theme.Current()),
		BodyClass: h.state.Theme.BodyClass(),
	}
}

func (h *UIHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.themeResponse())
}

func (h *UIHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.state.Theme.Toggle()
	log.Debug().Str("theme", string(theme)).Msg("Theme toggled")
	utils.RespondWithJSON(w, http.StatusOK, h.themeResponse())
}

func (h *UIHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req models.SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for SetTheme")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	theme, err := uistate.ParseTheme(strings.TrimSpace(req.Theme))
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.state.Theme.Set(theme)
	log.Debug().Str("theme", string(theme)).Msg("Theme set")
	utils.RespondWithJSON(w, http.StatusOK, h.themeResponse())
}

func (h *UIHandler) GetPopover(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.state.Popover.Snapshot())
}

func (h *UIHandler) OpenPopover(w http.ResponseWriter, r *http.Request) {
	var req models.OpenPopoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for OpenPopover")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ContentComponent) == "" {
		utils.SendJSONError(w, "content_component is required", http.StatusBadRequest)
		return
	}

	h.state.Popover.Open(req.ContentComponent, req.Props)
	utils.RespondWithJSON(w, http.StatusOK, h.state.Popover.Snapshot())
}

func (h *UIHandler) ClosePopover(w http.ResponseWriter, r *http.Request) {
	h.state.Popover.Close()
	utils.RespondWithJSON(w, http.StatusOK, h.state.Popover.Snapshot())
}

func (h *UIHandler) GetConveyor(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, models.ConveyorResponse{IsWorking: h.state.Conveyor.IsWorking()})
}

func (h *UIHandler) StartConveyor(w http.ResponseWriter, r *http.Request) {
	h.state.Conveyor.Start()
	log.Info().Msg("Conveyor marked as working")
	utils.RespondWithJSON(w, http.StatusOK, models.ConveyorResponse{IsWorking: true})
}

func (h *UIHandler) StopConveyor(w http.ResponseWriter, r *http.Request) {
	h.state.Conveyor.Stop()
	log.Info().Msg("Conveyor stopped")
	utils.RespondWithJSON(w, http.StatusOK, models.ConveyorResponse{IsWorking: false})
}

// GetCenter computes the centering style for ?ww=&wh=&ew=&eh= (window and
// element sizes in pixels).
func (h *UIHandler) GetCenter(w http.ResponseWriter, r *http.Request) {
	sizes := make([]float64, 4)
	for i, name := range []string{"ww", "wh", "ew", "eh"} {
		v, err := utils.GetFloatFromQuery(w, r, name, 0)
		if err != nil {
			return
		}
		sizes[i] = v
	}
	utils.RespondWithJSON(w, http.StatusOK, uistate.CenterPosition(sizes[0], sizes[1], sizes[2], sizes[3]))
}
