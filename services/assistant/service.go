// Package assistant is the session facade: it dispatches a question to
// local retrieval or to the selected AI provider according to the
// stored settings, records history, and routes feedback into the case
// store.
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/services/casestore"
	"github.com/dlformula/assistant/services/history"
	"github.com/dlformula/assistant/services/providers"
	"github.com/dlformula/assistant/services/retrieval"
	"github.com/dlformula/assistant/services/settings"
)

// Answer is the unified response for a question, from either mode
type Answer struct {
	Mode models.WorkMode `json:"mode"`

	// Results holds local retrieval matches (local mode)
	Results []retrieval.Result `json:"results,omitempty"`

	// Text holds the AI answer (ai mode)
	Text     string       `json:"text,omitempty"`
	Provider providers.ID `json:"provider,omitempty"`
	Model    string       `json:"model,omitempty"`
}

// Feedback marks an AI answer as correct or incorrect
type Feedback struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Provider string `json:"provider"`
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// Service orchestrates the question/answer session
type Service struct {
	settings  *settings.Service
	history   *history.Service
	cases     *casestore.Service
	retrieval *retrieval.Engine
	registry  *providers.Registry

	// fallbackKeys supplies environment-configured API keys used when
	// the stored settings carry none
	fallbackKeys map[providers.ID]string

	logger *zap.Logger
}

// NewService creates the assistant facade
func NewService(
	settingsSvc *settings.Service,
	historySvc *history.Service,
	casesSvc *casestore.Service,
	retrievalEngine *retrieval.Engine,
	registry *providers.Registry,
	fallbackKeys map[providers.ID]string,
	logger *zap.Logger,
) *Service {
	return &Service{
		settings:     settingsSvc,
		history:      historySvc,
		cases:        casesSvc,
		retrieval:    retrievalEngine,
		registry:     registry,
		fallbackKeys: fallbackKeys,
		logger:       logger,
	}
}

// Ask answers a formula question in the currently configured work mode
func (s *Service) Ask(ctx context.Context, question string, responseType providers.ResponseType) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, services.ErrEmptyQuestion
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var answer *Answer
	if cfg.WorkMode == models.WorkModeAI {
		answer, err = s.askProvider(ctx, question, responseType, cfg)
		if err != nil {
			return nil, err
		}
	} else {
		answer = &Answer{
			Mode:    models.WorkModeLocal,
			Results: s.retrieval.Search(ctx, question),
		}
	}

	if cfg.SaveHistory {
		// History is best effort; an answer is not lost to a history write failure
		if histErr := s.history.RecordSearch(ctx, question); histErr != nil {
			s.logger.Warn("failed to record search history", zap.Error(histErr))
		}
	}

	return answer, nil
}

// SubmitFeedback routes an approval or rejection into the case store
func (s *Service) SubmitFeedback(ctx context.Context, fb *Feedback) (*casestore.Outcome, error) {
	if fb.Approved {
		return s.cases.SaveApproved(ctx, fb.Question, fb.Answer, fb.Provider)
	}
	return s.cases.SaveRejected(ctx, fb.Question, fb.Answer, fb.Provider, fb.Reason)
}

// TestProviderKey probes a provider with the given API key
func (s *Service) TestProviderKey(ctx context.Context, providerID, apiKey string) (bool, error) {
	id, err := providers.ParseID(providerID)
	if err != nil {
		return false, services.ErrInvalidProvider
	}

	provider, err := s.registry.Get(id)
	if err != nil {
		return false, services.ErrProviderUnavailable
	}

	return providers.TestKey(ctx, provider, apiKey), nil
}

// askProvider resolves the configured provider and API key and performs
// the AI request
func (s *Service) askProvider(ctx context.Context, question string, responseType providers.ResponseType, cfg *models.Settings) (*Answer, error) {
	id, err := providers.ParseID(cfg.Provider)
	if err != nil {
		return nil, services.ErrInvalidProvider
	}

	provider, err := s.registry.Get(id)
	if err != nil {
		return nil, services.ErrProviderUnavailable
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = s.fallbackKeys[id]
	}
	if apiKey == "" {
		return nil, services.ErrMissingAPIKey
	}

	resp, err := provider.Ask(ctx, &providers.AskRequest{
		Question:     question,
		APIKey:       apiKey,
		ResponseType: responseType,
	})
	if err != nil {
		s.logger.Error("provider request failed",
			zap.String("provider", string(id)),
			zap.Error(err))
		return nil, services.WrapExternal("AI provider request failed", err)
	}

	s.logger.Info("provider answered",
		zap.String("provider", string(id)),
		zap.String("model", resp.Model),
		zap.Duration("latency", resp.Latency))

	return &Answer{
		Mode:     models.WorkModeAI,
		Text:     resp.Text,
		Provider: resp.Provider,
		Model:    resp.Model,
	}, nil
}
