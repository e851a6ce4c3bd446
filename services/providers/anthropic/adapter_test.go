package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dlformula/assistant/services/providers"
)

func TestNewAdapter(t *testing.T) {
	adapter := NewAdapter(providers.Config{})

	if adapter == nil {
		t.Fatal("NewAdapter() returned nil")
	}

	if adapter.ID() != providers.IDClaude {
		t.Errorf("ID() = %s, want %s", adapter.ID(), providers.IDClaude)
	}

	if adapter.Model() != defaultModel {
		t.Errorf("Model() = %s, want %s", adapter.Model(), defaultModel)
	}
}

func TestAdapter_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("Expected path /messages, got %s", r.URL.Path)
		}

		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}

		if r.Header.Get("anthropic-version") != apiVersion {
			t.Errorf("anthropic-version = %q, want %s", r.Header.Get("anthropic-version"), apiVersion)
		}

		body, _ := io.ReadAll(r.Body)
		var req messagesRequest
		json.Unmarshal(body, &req)

		// System instruction is folded into the single user turn
		if len(req.Messages) != 1 {
			t.Fatalf("len(Messages) = %d, want 1", len(req.Messages))
		}

		if req.Messages[0].Role != "user" {
			t.Errorf("message role = %s, want user", req.Messages[0].Role)
		}

		if !strings.Contains(req.Messages[0].Content, "DataLens") {
			t.Error("system instruction missing from user message")
		}

		if !strings.Contains(req.Messages[0].Content, "Что делает SUM_IF?") {
			t.Error("question missing from user message")
		}

		if req.Temperature != 0.1 {
			t.Errorf("Temperature = %f, want 0.1", req.Temperature)
		}

		resp := messagesResponse{
			ID:    "msg_test123",
			Model: req.Model,
			Content: []contentBlock{
				{Type: "text", Text: "SUM_IF суммирует значения по условию"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter := NewAdapter(providers.Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})

	resp, err := adapter.Ask(context.Background(), &providers.AskRequest{
		Question:     "Что делает SUM_IF?",
		APIKey:       "test-key",
		ResponseType: providers.ResponseDetailed,
	})

	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if resp.Provider != providers.IDClaude {
		t.Errorf("Provider = %s, want %s", resp.Provider, providers.IDClaude)
	}

	if resp.Text != "SUM_IF суммирует значения по условию" {
		t.Errorf("Unexpected response text: %s", resp.Text)
	}
}

func TestAdapter_Ask_MissingKey(t *testing.T) {
	adapter := NewAdapter(providers.Config{})

	_, err := adapter.Ask(context.Background(), &providers.AskRequest{Question: "test"})
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	provErr, ok := err.(*providers.Error)
	if !ok {
		t.Fatalf("Expected providers.Error, got %T", err)
	}

	if provErr.Code != "MISSING_API_KEY" {
		t.Errorf("Code = %s, want MISSING_API_KEY", provErr.Code)
	}
}

func TestAdapter_Ask_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)

		errResp := errorResponse{
			Error: apiError{
				Type:    "rate_limit_error",
				Message: "Rate limit exceeded",
			},
		}
		json.NewEncoder(w).Encode(errResp)
	}))
	defer server.Close()

	adapter := NewAdapter(providers.Config{BaseURL: server.URL})

	_, err := adapter.Ask(context.Background(), &providers.AskRequest{
		Question: "test",
		APIKey:   "test-key",
	})

	if err == nil {
		t.Fatal("Expected error but got none")
	}

	if !providers.IsRetryable(err) {
		t.Error("rate limit error should be retryable")
	}
}
