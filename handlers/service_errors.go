package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/utils"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsValidationError(err):
		_ = utils.WriteBadRequest(w, err.Error(), nil)

	case services.IsNotFoundError(err):
		_ = utils.WriteNotFound(w, err.Error())

	case services.IsDuplicateError(err):
		_ = utils.WriteConflict(w, err.Error(), nil)

	case services.IsExternalError(err):
		_ = utils.WriteBadGateway(w, err.Error(), nil)

	case services.IsStorageError(err):
		logger.Error("storage error", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "A storage error occurred")

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		_ = utils.WriteInternalServerError(w, "An unexpected error occurred")
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		_ = utils.WriteBadRequest(w, "Validation failed", details)
		return
	}

	logger.Debug("request validation failed", zap.Error(err))
	_ = utils.WriteBadRequest(w, err.Error(), nil)
}
