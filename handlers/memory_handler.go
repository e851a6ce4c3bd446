package handlers

import (
	"net/http"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/utils"
)

// MemoryStatsHandler returns feedback statistics
func MemoryStatsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.Cases.Statistics(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, stats)
	}
}

// MemoryExportHandler returns a portable snapshot of the stored cases
func MemoryExportHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := deps.Cases.Export(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, snapshot)
	}
}

// MemoryImportHandler replaces the stored cases with a snapshot
func MemoryImportHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snapshot models.Snapshot
		if !decodeJSON(w, r, deps.Logger, &snapshot) {
			return
		}
		if !validateRequest(w, deps.Logger, snapshot) {
			return
		}

		outcome, err := deps.Cases.Import(r.Context(), &snapshot)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, outcome)
	}
}

// CleanupRequest is the request body for POST /api/v1/memory/cleanup.
// A zero MaxAgeDays falls back to the configured retention default.
type CleanupRequest struct {
	MaxAgeDays int `json:"max_age_days" validate:"omitempty,gt=0"`
}

// MemoryCleanupHandler removes cases older than the age threshold
func MemoryCleanupHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := CleanupRequest{}
		if r.ContentLength > 0 {
			if !decodeJSON(w, r, deps.Logger, &req) {
				return
			}
			if !validateRequest(w, deps.Logger, req) {
				return
			}
		}
		if req.MaxAgeDays == 0 {
			req.MaxAgeDays = deps.Config.Retention.CleanupMaxAgeDays
		}

		report, err := deps.Cases.Cleanup(r.Context(), req.MaxAgeDays)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, report)
	}
}
