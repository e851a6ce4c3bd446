package openai

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

	if adapter.ID() != providers.IDOpenAI {
		t.Errorf("ID() = %s, want %s", adapter.ID(), providers.IDOpenAI)
	}

	if adapter.config.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", adapter.config.BaseURL, defaultBaseURL)
	}

	if adapter.Model() != defaultModel {
		t.Errorf("Model() = %s, want %s", adapter.Model(), defaultModel)
	}
}

func TestAdapter_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}

		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}

		auth := r.Header.Get("Authorization")
		if auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", auth)
		}

		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		json.Unmarshal(body, &req)

		if len(req.Messages) != 2 {
			t.Errorf("len(Messages) = %d, want 2", len(req.Messages))
		}

		if req.Messages[0].Role != "system" {
			t.Errorf("first message role = %s, want system", req.Messages[0].Role)
		}

		if !strings.Contains(req.Messages[1].Content, "Как округлить число?") {
			t.Errorf("question missing from user message: %s", req.Messages[1].Content)
		}

		if req.Temperature != 0.1 {
			t.Errorf("Temperature = %f, want 0.1", req.Temperature)
		}

		if req.MaxTokens != 1000 {
			t.Errorf("MaxTokens = %d, want 1000", req.MaxTokens)
		}

		resp := chatResponse{
			ID:    "chatcmpl-test123",
			Model: req.Model,
			Choices: []choice{
				{
					Index:        0,
					Message:      chatMessage{Role: "assistant", Content: "Используйте ROUND(число, точность)"},
					FinishReason: "stop",
				},
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
		Question:     "Как округлить число?",
		APIKey:       "test-key",
		ResponseType: providers.ResponseDetailed,
	})

	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if resp.Provider != providers.IDOpenAI {
		t.Errorf("Provider = %s, want %s", resp.Provider, providers.IDOpenAI)
	}

	if resp.Text != "Используйте ROUND(число, точность)" {
		t.Errorf("Unexpected response text: %s", resp.Text)
	}
}

func TestAdapter_Ask_ShortResponseBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		json.Unmarshal(body, &req)

		if req.MaxTokens != 200 {
			t.Errorf("MaxTokens = %d, want 200", req.MaxTokens)
		}

		resp := chatResponse{
			Model:   req.Model,
			Choices: []choice{{Message: chatMessage{Role: "assistant", Content: "ROUND(число)"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter := NewAdapter(providers.Config{BaseURL: server.URL})

	_, err := adapter.Ask(context.Background(), &providers.AskRequest{
		Question:     "округление",
		APIKey:       "test-key",
		ResponseType: providers.ResponseShort,
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
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
		w.WriteHeader(http.StatusUnauthorized)

		errResp := errorResponse{
			Error: apiError{
				Message: "Incorrect API key provided",
				Type:    "invalid_request_error",
				Code:    "invalid_api_key",
			},
		}
		json.NewEncoder(w).Encode(errResp)
	}))
	defer server.Close()

	adapter := NewAdapter(providers.Config{BaseURL: server.URL})

	_, err := adapter.Ask(context.Background(), &providers.AskRequest{
		Question: "test",
		APIKey:   "invalid-key",
	})

	if err == nil {
		t.Fatal("Expected error but got none")
	}

	provErr, ok := err.(*providers.Error)
	if !ok {
		t.Fatalf("Expected providers.Error, got %T", err)
	}

	if provErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", provErr.StatusCode, http.StatusUnauthorized)
	}

	if provErr.Retryable {
		t.Error("401 should not be retryable")
	}
}

func TestAdapter_Ask_Retry(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++

		// Fail first 2 attempts, succeed on 3rd
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		resp := chatResponse{
			Model:   "gpt-3.5-turbo",
			Choices: []choice{{Message: chatMessage{Role: "assistant", Content: "Success after retry"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter := NewAdapter(providers.Config{
		BaseURL:    server.URL,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
	})

	resp, err := adapter.Ask(context.Background(), &providers.AskRequest{
		Question: "test",
		APIKey:   "test-key",
	})

	if err != nil {
		t.Fatalf("Expected success after retry, got error: %v", err)
	}

	if resp.Text != "Success after retry" {
		t.Errorf("Unexpected response text: %s", resp.Text)
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}
