package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"bookmark/internal/models"
	"bookmark/internal/services"
	"bookmark/internal/utils"
)

type BookmarkHandler struct {
	service services.BookmarkService
}

func NewBookmarksHandler(service services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// GetBookmarks serves one page of processed bookmarks, newest first.
func (h *BookmarkHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	page, err := utils.GetPageFromQuery(w, r)
	if err != nil {
		return
	}

	result, err := h.service.GetBookmarks(r.Context(), page)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Error getting bookmarks from service")
		sendPageError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// GetBookmarksByCategory serves one page of processed bookmarks tagged with
// the category behind the slug. An unknown slug is an empty page.
func (h *BookmarkHandler) GetBookmarksByCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	page, err := utils.GetPageFromQuery(w, r)
	if err != nil {
		return
	}

	result, err := h.service.GetBookmarksByCategory(r.Context(), slug, page)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Int("page", page).Msg("Error getting bookmarks by category from service")
		sendPageError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

func sendPageError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidPage) {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.SendJSONError(w, "failed to fetch bookmarks", http.StatusInternalServerError)
}

// ListBookmarks backs the legacy page: every bookmark, newest first.
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.service.ListBookmarks(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error listing bookmarks from service")
		utils.SendJSONError(w, "failed to fetch bookmarks", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookmarks)
}

func (h *BookmarkHandler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var reqBody models.AddBookmarkRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for AddBookmark")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Debug().Interface("request_body", reqBody).Msg("Received bookmark request")

	bm, err := h.service.AddBookmark(r.Context(), reqBody)
	if err != nil {
		if errors.Is(err, services.ErrInvalidBookmark) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("Error adding bookmark via service")
		utils.SendJSONError(w, "failed to add bookmark", http.StatusInternalServerError)
		return
	}

	log.Info().Str("bookmark_id", bm.ID.Hex()).Msg("Successfully created bookmark")
	utils.RespondWithJSON(w, http.StatusCreated, bm)
}

func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	bookmarkID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.service.DeleteBookmark(r.Context(), bookmarkID); err != nil {
		if errors.Is(err, services.ErrBookmarkNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("bookmark_id", bookmarkID.Hex()).Msg("Error deleting bookmark via service")
		utils.SendJSONError(w, "failed to delete bookmark", http.StatusInternalServerError)
		return
	}

	log.Info().Str("bookmark_id", bookmarkID.Hex()).Msg("Successfully deleted bookmark")
	w.WriteHeader(http.StatusNoContent)
}
