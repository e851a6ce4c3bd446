// Package providers defines the unified AI provider boundary: a closed
// set of provider IDs, a common request/response shape, and a registry
// of configured adapters.
package providers

import (
	"context"
	"fmt"
	"time"
)

// ID identifies one of the supported AI providers. The set is closed;
// anything else fails ParseID.
type ID string

const (
	IDClaude   ID = "claude"
	IDDeepSeek ID = "deepseek"
	IDOpenAI   ID = "openai"
)

// ParseID validates a provider identifier
func ParseID(s string) (ID, error) {
	switch ID(s) {
	case IDClaude, IDDeepSeek, IDOpenAI:
		return ID(s), nil
	default:
		return "", fmt.Errorf("unsupported provider: %q", s)
	}
}

// IDs returns all supported provider IDs in a stable order
func IDs() []ID {
	return []ID{IDClaude, IDDeepSeek, IDOpenAI}
}

// ResponseType selects between a full structured answer and a bare
// function-syntax answer
type ResponseType string

const (
	ResponseDetailed ResponseType = "detailed"
	ResponseShort    ResponseType = "short"
)

// MaxTokensFor returns the completion budget for a response type
func MaxTokensFor(rt ResponseType) int {
	if rt == ResponseShort {
		return 200
	}
	return 1000
}

// AskRequest is a unified formula question for any provider
type AskRequest struct {
	// Question is the user's formula question
	Question string

	// APIKey authenticates the request; supplied per call from the
	// stored settings, never held by the adapter
	APIKey string

	// ResponseType selects the answer format (defaults to detailed)
	ResponseType ResponseType
}

// AskResponse is a unified provider answer
type AskResponse struct {
	// Text is the answer body
	Text string `json:"text"`

	// Provider that produced the answer
	Provider ID `json:"provider"`

	// Model used for the completion
	Model string `json:"model"`

	// Latency of the round trip
	Latency time.Duration `json:"latency"`
}

// Provider is the capability the assistant uses to obtain an AI answer
type Provider interface {
	// ID returns the provider identifier
	ID() ID

	// Name returns the human-readable provider name
	Name() string

	// Model returns the model the adapter targets
	Model() string

	// Ask performs a completion request for a formula question
	Ask(ctx context.Context, req *AskRequest) (*AskResponse, error)
}

// Config holds common configuration for provider adapters
type Config struct {
	// BaseURL for the API (optional override)
	BaseURL string

	// Model overrides the adapter's default model
	Model string

	// Timeout for requests
	Timeout time.Duration

	// MaxRetries for failed requests
	MaxRetries int

	// RetryDelay between retries
	RetryDelay time.Duration
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: 1 * time.Second,
	}
}

// Error represents an error from a provider
type Error struct {
	// Provider that generated the error
	Provider ID

	// Code is the provider-specific error code
	Code string

	// Message is the error message
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Retryable indicates if the request can be retried
	Retryable bool

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap implements error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new provider error
func NewError(provider ID, code, message string, statusCode int, retryable bool, cause error) *Error {
	return &Error{
		Provider:   provider,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
		Cause:      cause,
	}
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if provErr, ok := err.(*Error); ok {
		return provErr.Retryable
	}
	return false
}

// TestKey checks whether an API key works by sending a minimal probe
// question to the provider
func TestKey(ctx context.Context, p Provider, apiKey string) bool {
	_, err := p.Ask(ctx, &AskRequest{
		Question:     "Тест подключения",
		APIKey:       apiKey,
		ResponseType: ResponseShort,
	})
	return err == nil
}
