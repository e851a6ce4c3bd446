package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/config"
	"github.com/dlformula/assistant/routes"
)

// newTestServer builds a full memory-backed application behind the real
// router.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Storage: config.StorageConfig{Backend: config.StorageMemory},
		Retention: config.RetentionConfig{
			MaxApprovedCases:  100,
			MaxRejectedCases:  50,
			CleanupMaxAgeDays: 30,
		},
	}

	deps, err := app.NewDependencies(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	return routes.SetupRoutes(deps)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	data, _ := response["data"].(map[string]interface{})
	return data
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var ready map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ready))
	assert.Equal(t, "ready", ready["status"])
	checks := ready["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["storage"])
	assert.Equal(t, "configured", checks["providers"])
}

func TestStatus(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "test", status["environment"])
	assert.Equal(t, "memory", status["storage"])
	assert.Len(t, status["providers"], 3)
}

func TestSearch(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/search?q=%D0%BE%D0%BA%D1%80%D1%83%D0%B3%D0%BB%D0%B5%D0%BD%D0%B8%D0%B5+%D0%B4%D0%BE", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.NotEmpty(t, response.Data)
	assert.Equal(t, "base", response.Data[0]["source"])
}

func TestSearch_EmptyQuery(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAsk_LocalMode(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]string{
		"question": "как округлить число",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, "local", data["mode"])
	assert.NotEmpty(t, data["results"])
}

func TestAsk_Validation(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]string{
		"question":      "вопрос",
		"response_type": "verbose",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedback(t *testing.T) {
	h := newTestServer(t)

	body := map[string]interface{}{
		"question": "Как округлить число?",
		"answer":   "ROUND(число)",
		"provider": "claude",
		"approved": true,
	}

	rec := doJSON(t, h, http.MethodPost, "/api/v1/feedback", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, true, data["saved"])
	assert.NotContains(t, data, "duplicate")

	// The same question again is flagged as a duplicate, not an error
	rec = doJSON(t, h, http.MethodPost, "/api/v1/feedback", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	data = decodeData(t, rec)
	assert.Equal(t, false, data["saved"])
	assert.Equal(t, true, data["duplicate"])
}

func TestFeedback_Validation(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
		"question": "вопрос без ответа",
		"approved": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemoryLifecycle(t *testing.T) {
	h := newTestServer(t)

	// Seed one approved case
	rec := doJSON(t, h, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
		"question": "Как сложить значения?",
		"answer":   "SUM([поле])",
		"provider": "claude",
		"approved": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Stats
	rec = doJSON(t, h, http.MethodGet, "/api/v1/memory/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, float64(1), data["approved_count"])
	assert.Equal(t, float64(0), data["rejected_count"])

	// Export
	rec = doJSON(t, h, http.MethodGet, "/api/v1/memory/export", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	snapshot := decodeData(t, rec)
	assert.Equal(t, "1.0", snapshot["version"])

	// Import it back
	rec = doJSON(t, h, http.MethodPost, "/api/v1/memory/import", snapshot)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Cleanup with default age removes nothing fresh
	rec = doJSON(t, h, http.MethodPost, "/api/v1/memory/cleanup", map[string]int{"max_age_days": 10})
	assert.Equal(t, http.StatusOK, rec.Code)
	report := decodeData(t, rec)
	assert.Equal(t, float64(0), report["removed_approved"])
}

func TestMemoryImport_Invalid(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/memory/import", map[string]interface{}{
		"version": "1.0",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsLifecycle(t *testing.T) {
	h := newTestServer(t)

	// Defaults
	rec := doJSON(t, h, http.MethodGet, "/api/v1/settings/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, "local", data["work_mode"])
	assert.Equal(t, "claude", data["provider"])
	assert.Equal(t, false, data["has_api_key"])

	// Update
	rec = doJSON(t, h, http.MethodPut, "/api/v1/settings/", map[string]interface{}{
		"work_mode":    "ai",
		"provider":     "deepseek",
		"api_key":      "sk-test",
		"save_history": true,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	assert.Equal(t, "deepseek", data["provider"])
	assert.Equal(t, true, data["has_api_key"])

	// Invalid update
	rec = doJSON(t, h, http.MethodPut, "/api/v1/settings/", map[string]interface{}{
		"work_mode": "ai",
		"provider":  "claude",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Reset
	rec = doJSON(t, h, http.MethodPost, "/api/v1/settings/reset", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	assert.Equal(t, "local", data["work_mode"])
	assert.Equal(t, false, data["has_api_key"])
}

func TestHistoryAndFavorites(t *testing.T) {
	h := newTestServer(t)

	// Asking records history (default settings keep it)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]string{"question": "округление"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/history/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, "округление", history.Data[0]["query"])

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/history/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Favorites
	rec = doJSON(t, h, http.MethodPost, "/api/v1/favorites/", map[string]string{"name": "round"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/favorites/", map[string]string{"name": "ROUND"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/favorites/", map[string]string{"name": "NOSUCHFN"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/favorites/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/favorites/ROUND", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/favorites/ROUND", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/functions/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var functions struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&functions))
	assert.Greater(t, len(functions.Data), 30)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/functions/?category=math", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	functions.Data = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&functions))
	require.NotEmpty(t, functions.Data)
	for _, f := range functions.Data {
		assert.Equal(t, "math", f["category"])
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/functions/categories", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/functions/round", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	entry := decodeData(t, rec)
	assert.Equal(t, "ROUND", entry["name"])

	rec = doJSON(t, h, http.MethodGet, "/api/v1/functions/NOSUCHFN", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTestKey_Validation(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/providers/test", map[string]string{
		"provider": "gemini",
		"api_key":  "key",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/providers/test", map[string]string{
		"provider": "claude",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundRoute(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"endpoint not found"}`, rec.Body.String())
}
