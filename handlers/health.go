package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/config"
)

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessCheck performs a more thorough readiness check
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ready"
		checks := map[string]string{}

		switch deps.Config.Storage.Backend {
		case config.StoragePostgres:
			if deps.DB == nil {
				status = "not_ready"
				checks["storage"] = "not_initialized"
			} else if err := deps.DB.HealthCheck(ctx); err != nil {
				status = "not_ready"
				checks["storage"] = "unhealthy"
				deps.Logger.Error("storage health check failed", zap.Error(err))
			} else {
				checks["storage"] = "healthy"
			}
		default:
			checks["storage"] = "healthy"
		}

		if deps.ProviderRegistry.Count() == 0 {
			checks["providers"] = "none_configured"
		} else {
			checks["providers"] = "configured"
		}

		w.Header().Set("Content-Type", "application/json")
		if status == "ready" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	}
}

// StatusHandler returns application status information
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"version":     "0.1.0",
			"environment": deps.Config.Environment,
			"storage":     deps.Config.Storage.Backend,
			"providers":   deps.ProviderRegistry.List(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
