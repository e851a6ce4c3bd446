package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/utils"
)

// GetHistoryHandler returns the recorded search queries, newest first
func GetHistoryHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := deps.History.History(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, entries)
	}
}

// ClearHistoryHandler removes all recorded queries
func ClearHistoryHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.History.ClearHistory(r.Context()); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		utils.WriteNoContent(w)
	}
}

// ListFavoritesHandler returns the pinned functions
func ListFavoritesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favorites, err := deps.History.Favorites(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, favorites)
	}
}

// AddFavoriteRequest is the request body for POST /api/v1/favorites
type AddFavoriteRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddFavoriteHandler pins a catalog function
func AddFavoriteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddFavoriteRequest
		if !decodeJSON(w, r, deps.Logger, &req) {
			return
		}
		if !validateRequest(w, deps.Logger, req) {
			return
		}

		favorite, err := deps.History.AddFavorite(r.Context(), req.Name)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteCreated(w, favorite)
	}
}

// RemoveFavoriteHandler unpins a function by name
func RemoveFavoriteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := deps.History.RemoveFavorite(r.Context(), name); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		utils.WriteNoContent(w)
	}
}
