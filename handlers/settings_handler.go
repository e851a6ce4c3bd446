package handlers

import (
	"net/http"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/utils"
)

// GetSettingsHandler returns the stored settings (defaults when unset).
// The API key is masked: only its presence is exposed.
func GetSettingsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := deps.Settings.Get(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, maskSettings(settings))
	}
}

// UpdateSettingsHandler validates and persists new settings
func UpdateSettingsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings models.Settings
		if !decodeJSON(w, r, deps.Logger, &settings) {
			return
		}

		if err := deps.Settings.Update(r.Context(), &settings); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, maskSettings(&settings))
	}
}

// ResetSettingsHandler restores the defaults
func ResetSettingsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := deps.Settings.Reset(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		_ = utils.WriteOK(w, maskSettings(settings))
	}
}

// SettingsResponse mirrors models.Settings without the raw API key
type SettingsResponse struct {
	WorkMode    models.WorkMode `json:"work_mode"`
	Provider    string          `json:"provider"`
	HasAPIKey   bool            `json:"has_api_key"`
	SaveHistory bool            `json:"save_history"`
	AutoCopy    bool            `json:"auto_copy"`
}

func maskSettings(s *models.Settings) SettingsResponse {
	return SettingsResponse{
		WorkMode:    s.WorkMode,
		Provider:    s.Provider,
		HasAPIKey:   s.APIKey != "",
		SaveHistory: s.SaveHistory,
		AutoCopy:    s.AutoCopy,
	}
}
