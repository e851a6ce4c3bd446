// Package casestore persists and searches user-curated feedback cases
// on top of the KeyValueStore capability.
package casestore

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/repositories"
	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/services/similarity"
)

// Scoring and retention constants. The thresholds and weights are part of
// the external contract; do not tune without product input.
const (
	questionMatchBonus = 15
	questionTermBonus  = 5
	answerTermBonus    = 3

	duplicateThreshold  = 0.8
	similarityThreshold = 0.5

	// SearchLimit caps approved-case search results
	SearchLimit = 3

	snapshotVersion = "1.0"
)

// Config holds retention limits for the case collections
type Config struct {
	MaxApproved       int
	MaxRejected       int
	CleanupMaxAgeDays int
}

// DefaultConfig returns the default retention configuration
func DefaultConfig() Config {
	return Config{
		MaxApproved:       100,
		MaxRejected:       50,
		CleanupMaxAgeDays: 30,
	}
}

// Outcome is the tagged result of a save or import operation
type Outcome struct {
	Saved     bool         `json:"saved"`
	Duplicate bool         `json:"duplicate,omitempty"`
	Message   string       `json:"message"`
	Case      *models.Case `json:"case,omitempty"`
}

// ScoredCase is a case annotated with its search score
type ScoredCase struct {
	*models.Case
	Score      int     `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Service owns the lifecycle of approved and rejected cases. It is the
// sole writer of the approved_cases and rejected_cases storage keys.
type Service struct {
	store  repositories.KeyValueStore
	logger *zap.Logger
	config Config
	now    func() time.Time
}

// NewService creates a new case store service
func NewService(store repositories.KeyValueStore, logger *zap.Logger, config Config) *Service {
	return &Service{
		store:  store,
		logger: logger,
		config: config,
		now:    time.Now,
	}
}

// SaveApproved stores a new approved case unless a similar question is
// already present. The full collection is rewritten in a single store
// write; the collection keeps its most recent MaxApproved cases.
func (s *Service) SaveApproved(ctx context.Context, question, answer, provider string) (*Outcome, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return nil, services.ErrEmptyQuestion
	}
	if answer == "" {
		return nil, services.ErrEmptyAnswer
	}

	existing, err := s.approvedCases(ctx)
	if err != nil {
		return nil, err
	}

	lowerQuestion := strings.ToLower(question)
	for _, c := range existing {
		if similarity.Ratio(strings.ToLower(c.Question), lowerQuestion) > duplicateThreshold {
			s.logger.Debug("duplicate case rejected",
				zap.String("question", question),
				zap.String("existing_id", c.ID))
			return &Outcome{
				Saved:     false,
				Duplicate: true,
				Message:   "Похожий случай уже существует",
			}, nil
		}
	}

	newCase := models.NewCase(question, answer, provider, models.CaseKindApproved)
	newCase.Timestamp = s.now()

	updated := truncateByTimestamp(append(existing, newCase), s.config.MaxApproved)
	if err := repositories.SetJSON(ctx, s.store, repositories.KeyApprovedCases, updated); err != nil {
		s.logger.Error("failed to persist approved cases", zap.Error(err))
		return nil, services.WrapStorage("failed to persist approved cases", err)
	}

	s.logger.Info("approved case saved",
		zap.String("id", newCase.ID),
		zap.String("provider", provider),
		zap.Int("collection_size", len(updated)))

	return &Outcome{
		Saved:   true,
		Message: "Случай добавлен в базу знаний",
		Case:    newCase,
	}, nil
}

// SaveRejected stores a rejected case. No deduplication is applied; the
// collection keeps its most recent MaxRejected cases.
func (s *Service) SaveRejected(ctx context.Context, question, answer, provider, reason string) (*Outcome, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return nil, services.ErrEmptyQuestion
	}
	if answer == "" {
		return nil, services.ErrEmptyAnswer
	}

	existing, err := s.rejectedCases(ctx)
	if err != nil {
		return nil, err
	}

	newCase := models.NewCase(question, answer, provider, models.CaseKindRejected)
	newCase.Timestamp = s.now()
	newCase.Reason = reason

	updated := truncateByTimestamp(append(existing, newCase), s.config.MaxRejected)
	if err := repositories.SetJSON(ctx, s.store, repositories.KeyRejectedCases, updated); err != nil {
		s.logger.Error("failed to persist rejected cases", zap.Error(err))
		return nil, services.WrapStorage("failed to persist rejected cases", err)
	}

	s.logger.Info("rejected case saved",
		zap.String("id", newCase.ID),
		zap.String("provider", provider),
		zap.Int("collection_size", len(updated)))

	return &Outcome{
		Saved:   true,
		Message: "Неверный ответ отмечен",
		Case:    newCase,
	}, nil
}

// SearchApproved ranks approved cases against a query: +15 for a
// full-query substring match on the question, +5 per term in the
// question, +3 per term in the answer, plus floor(similarity*10) when
// the question similarity exceeds 0.5. Returns at most SearchLimit
// cases by descending score.
func (s *Service) SearchApproved(ctx context.Context, query string) ([]ScoredCase, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	cases, err := s.approvedCases(ctx)
	if err != nil {
		return nil, err
	}

	lowerQuery := strings.ToLower(query)
	terms := splitTerms(query)

	var results []ScoredCase
	for _, c := range cases {
		score := 0
		lowerQuestion := strings.ToLower(c.Question)
		lowerAnswer := strings.ToLower(c.Answer)

		if strings.Contains(lowerQuestion, lowerQuery) {
			score += questionMatchBonus
		}

		for _, term := range terms {
			if strings.Contains(lowerQuestion, term) {
				score += questionTermBonus
			}
			if strings.Contains(lowerAnswer, term) {
				score += answerTermBonus
			}
		}

		sim := similarity.Ratio(lowerQuestion, lowerQuery)
		if sim > similarityThreshold {
			score += int(math.Floor(sim * 10))
		}

		if score > 0 {
			results = append(results, ScoredCase{Case: c, Score: score, Similarity: sim})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > SearchLimit {
		results = results[:SearchLimit]
	}
	return results, nil
}

// Statistics summarizes both collections
func (s *Service) Statistics(ctx context.Context) (*models.Statistics, error) {
	approved, err := s.approvedCases(ctx)
	if err != nil {
		return nil, err
	}
	rejected, err := s.rejectedCases(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		ApprovedCount: len(approved),
		RejectedCount: len(rejected),
		TotalFeedback: len(approved) + len(rejected),
	}

	for _, c := range approved {
		if c.Timestamp.After(stats.LastActivity) {
			stats.LastActivity = c.Timestamp
		}
	}
	for _, c := range rejected {
		if c.Timestamp.After(stats.LastActivity) {
			stats.LastActivity = c.Timestamp
		}
	}

	return stats, nil
}

// Export returns a serializable snapshot of both collections
func (s *Service) Export(ctx context.Context) (*models.Snapshot, error) {
	approved, err := s.approvedCases(ctx)
	if err != nil {
		return nil, err
	}
	rejected, err := s.rejectedCases(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Version:    snapshotVersion,
		ExportDate: s.now(),
		Data: &models.SnapshotData{
			Approved: approved,
			Rejected: rejected,
		},
	}, nil
}

// Import replaces both collections wholesale from a snapshot. A snapshot
// without a data section fails validation.
func (s *Service) Import(ctx context.Context, snapshot *models.Snapshot) (*Outcome, error) {
	if snapshot == nil || snapshot.Data == nil {
		return nil, services.ErrInvalidSnapshot
	}

	approved := snapshot.Data.Approved
	if approved == nil {
		approved = []*models.Case{}
	}
	rejected := snapshot.Data.Rejected
	if rejected == nil {
		rejected = []*models.Case{}
	}

	if err := s.persistBoth(ctx, approved, rejected); err != nil {
		s.logger.Error("failed to import snapshot", zap.Error(err))
		return nil, services.WrapStorage("failed to import snapshot", err)
	}

	s.logger.Info("snapshot imported",
		zap.Int("approved", len(approved)),
		zap.Int("rejected", len(rejected)))

	return &Outcome{
		Saved:   true,
		Message: "Данные импортированы успешно",
	}, nil
}

// Cleanup removes cases older than maxAgeDays from both collections and
// reports how many were dropped. A non-positive maxAgeDays falls back to
// the configured default.
func (s *Service) Cleanup(ctx context.Context, maxAgeDays int) (*models.CleanupReport, error) {
	if maxAgeDays <= 0 {
		maxAgeDays = s.config.CleanupMaxAgeDays
	}
	cutoff := s.now().Add(-time.Duration(maxAgeDays) * 24 * time.Hour)

	approved, err := s.approvedCases(ctx)
	if err != nil {
		return nil, err
	}
	rejected, err := s.rejectedCases(ctx)
	if err != nil {
		return nil, err
	}

	keptApproved := keepNewerThan(approved, cutoff)
	keptRejected := keepNewerThan(rejected, cutoff)

	if err := s.persistBoth(ctx, keptApproved, keptRejected); err != nil {
		s.logger.Error("failed to persist cleaned collections", zap.Error(err))
		return nil, services.WrapStorage("failed to persist cleaned collections", err)
	}

	report := &models.CleanupReport{
		RemovedApproved: len(approved) - len(keptApproved),
		RemovedRejected: len(rejected) - len(keptRejected),
	}

	s.logger.Info("cleanup completed",
		zap.Int("max_age_days", maxAgeDays),
		zap.Int("removed_approved", report.RemovedApproved),
		zap.Int("removed_rejected", report.RemovedRejected))

	return report, nil
}

func (s *Service) approvedCases(ctx context.Context) ([]*models.Case, error) {
	return s.loadCases(ctx, repositories.KeyApprovedCases)
}

func (s *Service) rejectedCases(ctx context.Context) ([]*models.Case, error) {
	return s.loadCases(ctx, repositories.KeyRejectedCases)
}

func (s *Service) loadCases(ctx context.Context, key string) ([]*models.Case, error) {
	var cases []*models.Case
	if _, err := repositories.GetJSON(ctx, s.store, key, &cases); err != nil {
		s.logger.Error("failed to load cases", zap.String("key", key), zap.Error(err))
		return nil, services.NewDomainError(services.ErrorTypeStorage, "failed to load cases", err).WithDetail("key", key)
	}
	return cases, nil
}

func (s *Service) persistBoth(ctx context.Context, approved, rejected []*models.Case) error {
	if err := repositories.SetJSON(ctx, s.store, repositories.KeyApprovedCases, approved); err != nil {
		return err
	}
	return repositories.SetJSON(ctx, s.store, repositories.KeyRejectedCases, rejected)
}

// truncateByTimestamp orders cases newest first and drops everything
// beyond limit
func truncateByTimestamp(cases []*models.Case, limit int) []*models.Case {
	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].Timestamp.After(cases[j].Timestamp)
	})
	if limit > 0 && len(cases) > limit {
		cases = cases[:limit]
	}
	return cases
}

func keepNewerThan(cases []*models.Case, cutoff time.Time) []*models.Case {
	kept := make([]*models.Case, 0, len(cases))
	for _, c := range cases {
		if c.Timestamp.After(cutoff) {
			kept = append(kept, c)
		}
	}
	return kept
}

// splitTerms mirrors the knowledge-base term filter: whitespace split,
// lowercase, drop terms shorter than three characters.
func splitTerms(query string) []string {
	var terms []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(term)) >= 3 {
			terms = append(terms, term)
		}
	}
	return terms
}
