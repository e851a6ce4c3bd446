package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/services/knowledge"
	"github.com/dlformula/assistant/utils"
)

// ListFunctionsHandler returns the catalog, optionally filtered by
// category (?category=math)
func ListFunctionsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := knowledge.Entries()

		if category := r.URL.Query().Get("category"); category != "" {
			filtered := make([]models.FormulaEntry, 0, len(entries))
			for _, e := range entries {
				if e.Category == models.FormulaCategory(category) {
					filtered = append(filtered, e)
				}
			}
			entries = filtered
		}

		_ = utils.WriteOK(w, entries)
	}
}

// ListCategoriesHandler returns the distinct catalog categories
func ListCategoriesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, knowledge.Categories())
	}
}

// GetFunctionHandler returns one catalog entry by name
func GetFunctionHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.ToUpper(chi.URLParam(r, "name"))

		entry, ok := knowledge.Lookup(name)
		if !ok {
			HandleServiceError(w, services.ErrFormulaNotFound, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, entry)
	}
}
