package handlers

import (
	"net/http"
	"strings"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/services/assistant"
	"github.com/dlformula/assistant/services/providers"
	"github.com/dlformula/assistant/utils"
)

// SearchHandler runs a local retrieval search over the knowledge base
// and stored cases
func SearchHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			HandleServiceError(w, services.ErrEmptyQuery, deps.Logger)
			return
		}

		results := deps.Retrieval.Search(r.Context(), query)
		_ = utils.WriteOK(w, results)
	}
}

// AskRequest is the request body for POST /api/v1/ask
type AskRequest struct {
	Question     string `json:"question" validate:"required"`
	ResponseType string `json:"response_type" validate:"omitempty,oneof=detailed short"`
}

// AskHandler answers a question in the configured work mode
func AskHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AskRequest
		if !decodeJSON(w, r, deps.Logger, &req) {
			return
		}
		if !validateRequest(w, deps.Logger, req) {
			return
		}

		responseType := providers.ResponseType(req.ResponseType)
		if responseType == "" {
			responseType = providers.ResponseDetailed
		}

		answer, err := deps.Assistant.Ask(r.Context(), req.Question, responseType)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteOK(w, answer)
	}
}

// FeedbackHandler records an approval or rejection of an AI answer.
// A near-duplicate approval is not an error: the outcome says so.
func FeedbackHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assistant.Feedback
		if !decodeJSON(w, r, deps.Logger, &req) {
			return
		}
		if !validateRequest(w, deps.Logger, req) {
			return
		}

		outcome, err := deps.Assistant.SubmitFeedback(r.Context(), &req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteOK(w, outcome)
	}
}

// TestKeyRequest is the request body for POST /api/v1/providers/test
type TestKeyRequest struct {
	Provider string `json:"provider" validate:"required"`
	APIKey   string `json:"api_key" validate:"required"`
}

// TestKeyHandler probes a provider with the supplied API key
func TestKeyHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TestKeyRequest
		if !decodeJSON(w, r, deps.Logger, &req) {
			return
		}
		if !validateRequest(w, deps.Logger, req) {
			return
		}

		ok, err := deps.Assistant.TestProviderKey(r.Context(), req.Provider, req.APIKey)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteOK(w, map[string]bool{"valid": ok})
	}
}
