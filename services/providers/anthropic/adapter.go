// Package anthropic implements the provider adapter for the Anthropic
// Messages API (Claude).
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dlformula/assistant/services/providers"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1"
	defaultModel   = "claude-3-haiku-20240307"

	apiVersion  = "2023-06-01"
	temperature = 0.1
)

// Adapter implements the Provider interface for Anthropic
type Adapter struct {
	config     providers.Config
	model      string
	httpClient *http.Client
}

// NewAdapter creates a new Anthropic adapter
func NewAdapter(config providers.Config) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Adapter{
		config: config,
		model:  config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// ID returns the provider identifier
func (a *Adapter) ID() providers.ID {
	return providers.IDClaude
}

// Name returns the provider name
func (a *Adapter) Name() string {
	return "Claude"
}

// Model returns the model the adapter targets
func (a *Adapter) Model() string {
	return a.model
}

// Ask performs a messages request for a formula question. The system
// instruction is folded into the single user turn.
func (a *Adapter) Ask(ctx context.Context, req *providers.AskRequest) (*providers.AskResponse, error) {
	startTime := time.Now()

	if req.APIKey == "" {
		return nil, providers.NewError(a.ID(), "MISSING_API_KEY", "API key is required", http.StatusUnauthorized, false, nil)
	}

	msgReq := &messagesRequest{
		Model:     a.model,
		MaxTokens: providers.MaxTokensFor(req.ResponseType),
		Messages: []message{
			{
				Role:    "user",
				Content: providers.SystemPrompt(req.ResponseType) + "\n\n" + providers.UserMessage(req.Question),
			},
		},
		Temperature: temperature,
	}

	reqBody, err := json.Marshal(msgReq)
	if err != nil {
		return nil, providers.NewError(a.ID(), "MARSHAL_ERROR", "failed to marshal request", 0, false, err)
	}

	var httpResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(a.config.RetryDelay * time.Duration(attempt))
		}

		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+"/messages", bytes.NewReader(reqBody))
		if reqErr != nil {
			return nil, providers.NewError(a.ID(), "REQUEST_ERROR", "failed to create request", 0, false, reqErr)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", req.APIKey)
		httpReq.Header.Set("anthropic-version", apiVersion)

		httpResp, lastErr = a.httpClient.Do(httpReq)
		if lastErr == nil && httpResp.StatusCode < 500 {
			break
		}

		if httpResp != nil {
			httpResp.Body.Close()
		}
	}

	if lastErr != nil {
		return nil, providers.NewError(a.ID(), "HTTP_ERROR", "HTTP request failed", 0, true, lastErr)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, providers.NewError(a.ID(), "READ_ERROR", "failed to read response", httpResp.StatusCode, false, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, a.handleErrorResponse(httpResp.StatusCode, respBody)
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBody, &msgResp); err != nil {
		return nil, providers.NewError(a.ID(), "UNMARSHAL_ERROR", "failed to unmarshal response", httpResp.StatusCode, false, err)
	}

	if len(msgResp.Content) == 0 {
		return nil, providers.NewError(a.ID(), "EMPTY_RESPONSE", "response contained no content blocks", httpResp.StatusCode, false, nil)
	}

	return &providers.AskResponse{
		Text:     msgResp.Content[0].Text,
		Provider: a.ID(),
		Model:    msgResp.Model,
		Latency:  time.Since(startTime),
	}, nil
}

// handleErrorResponse handles Anthropic error responses
func (a *Adapter) handleErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return providers.NewError(a.ID(), "UNKNOWN_ERROR", string(body), statusCode, false, err)
	}

	retryable := statusCode >= 500 || statusCode == http.StatusTooManyRequests || statusCode == 529

	return providers.NewError(
		a.ID(),
		errResp.Error.Type,
		errResp.Error.Message,
		statusCode,
		retryable,
		errors.New(errResp.Error.Message),
	)
}

// Anthropic-specific request/response types

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
