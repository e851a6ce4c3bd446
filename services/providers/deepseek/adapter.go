// Package deepseek implements the provider adapter for the DeepSeek
// chat completions API. The API is wire-compatible with OpenAI chat
// completions apart from the endpoint and model names.
package deepseek

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
	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"

	temperature = 0.1
)

// Adapter implements the Provider interface for DeepSeek
type Adapter struct {
	config     providers.Config
	model      string
	httpClient *http.Client
}

// NewAdapter creates a new DeepSeek adapter
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
	return providers.IDDeepSeek
}

// Name returns the provider name
func (a *Adapter) Name() string {
	return "DeepSeek"
}

// Model returns the model the adapter targets
func (a *Adapter) Model() string {
	return a.model
}

// Ask performs a chat completion request for a formula question
func (a *Adapter) Ask(ctx context.Context, req *providers.AskRequest) (*providers.AskResponse, error) {
	startTime := time.Now()

	if req.APIKey == "" {
		return nil, providers.NewError(a.ID(), "MISSING_API_KEY", "API key is required", http.StatusUnauthorized, false, nil)
	}

	chatReq := &chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: providers.SystemPrompt(req.ResponseType)},
			{Role: "user", Content: providers.UserMessage(req.Question)},
		},
		MaxTokens:   providers.MaxTokensFor(req.ResponseType),
		Temperature: temperature,
	}

	reqBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, providers.NewError(a.ID(), "MARSHAL_ERROR", "failed to marshal request", 0, false, err)
	}

	var httpResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(a.config.RetryDelay * time.Duration(attempt))
		}

		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
		if reqErr != nil {
			return nil, providers.NewError(a.ID(), "REQUEST_ERROR", "failed to create request", 0, false, reqErr)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

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

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, providers.NewError(a.ID(), "UNMARSHAL_ERROR", "failed to unmarshal response", httpResp.StatusCode, false, err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, providers.NewError(a.ID(), "EMPTY_RESPONSE", "response contained no choices", httpResp.StatusCode, false, nil)
	}

	return &providers.AskResponse{
		Text:     chatResp.Choices[0].Message.Content,
		Provider: a.ID(),
		Model:    chatResp.Model,
		Latency:  time.Since(startTime),
	}, nil
}

// handleErrorResponse handles DeepSeek error responses
func (a *Adapter) handleErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return providers.NewError(a.ID(), "UNKNOWN_ERROR", string(body), statusCode, false, err)
	}

	retryable := statusCode >= 500 || statusCode == http.StatusTooManyRequests

	return providers.NewError(
		a.ID(),
		errResp.Error.Type,
		errResp.Error.Message,
		statusCode,
		retryable,
		errors.New(errResp.Error.Message),
	)
}

// DeepSeek-specific request/response types

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}
