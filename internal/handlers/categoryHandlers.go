package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"bookmark/internal/models"
	"bookmark/internal/services"
	"bookmark/internal/utils"
)

type CategoryHandler struct {
	service services.CategoryService
}

func NewCategoryHandler(service services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// GetCategories lists category names, optionally fuzzy filtered by ?q=.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	names, err := h.service.GetCategoryNames(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("Error getting categories from service")
		utils.SendJSONError(w, "failed to fetch categories", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.CategoriesResponse{Categories: names})
}

func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for AddCategory")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.service.AddCategory(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNameRequired),
			errors.Is(err, services.ErrInvalidCategoryName),
			errors.Is(err, services.ErrContextNotFound):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrCategoryExists):
			utils.SendJSONError(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Msg("Error adding category via service")
			utils.SendJSONError(w, "failed to create category", http.StatusInternalServerError)
		}
		return
	}

	log.Info().Str("category_id", category.ID.Hex()).Str("name", category.Name).Msg("Successfully created category")
	utils.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) RecalculateCounts(w http.ResponseWriter, r *http.Request) {
	updated, err := h.service.RecalculateCounts(r.Context())
	if err != nil {
		log.Error().Err(err).Int("updated", updated).Msg("Error recalculating category counts")
		utils.SendJSONError(w, "failed to recalculate counts", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *CategoryHandler) FixMissingParents(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.FixMissingParents(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error fixing missing parent categories")
		utils.SendJSONError(w, "failed to fix parent categories", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string][]string{"created": created})
}
