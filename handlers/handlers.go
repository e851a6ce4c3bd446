// Package handlers contains the HTTP handlers for the assistant API.
// Handlers stay thin: decode, validate, call a service, map the result.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/utils"
)

// decodeJSON decodes a request body into dest, responding with 400 on
// malformed input. Returns false when a response was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		logger.Debug("failed to decode request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "invalid JSON body", nil)
		return false
	}
	return true
}

// validateRequest runs struct validation, responding with 400 and field
// details on failure. Returns false when a response was already written.
func validateRequest(w http.ResponseWriter, logger *zap.Logger, req interface{}) bool {
	if err := utils.ValidateStruct(req); err != nil {
		HandleValidationError(w, err, logger)
		return false
	}
	return true
}
