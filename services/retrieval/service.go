// Package retrieval merges user-curated case search with the static
// catalog search into one ranked result list.
package retrieval

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/services/casestore"
	"github.com/dlformula/assistant/services/knowledge"
)

// Source tags where a merged result came from
type Source string

const (
	SourceUser Source = "user"
	SourceBase Source = "base"
)

// Result priorities. User cases always outrank base entries regardless
// of score; curated answers deliberately override the static catalog.
const (
	priorityUser = 1
	priorityBase = 2

	// MergedLimit caps merged search results
	MergedLimit = 8
)

// Result is one merged, ranked search hit. Exactly one of Case and
// Entry is set, according to Source.
type Result struct {
	Source   Source               `json:"source"`
	Priority int                  `json:"priority"`
	Score    int                  `json:"score"`
	Case     *casestore.ScoredCase `json:"case,omitempty"`
	Entry    *models.FormulaEntry  `json:"entry,omitempty"`
}

// CaseSearcher is the slice of the case store the engine depends on
type CaseSearcher interface {
	SearchApproved(ctx context.Context, query string) ([]casestore.ScoredCase, error)
}

// Engine runs the merged search
type Engine struct {
	cases  CaseSearcher
	logger *zap.Logger
}

// NewEngine creates a retrieval engine
func NewEngine(cases CaseSearcher, logger *zap.Logger) *Engine {
	return &Engine{cases: cases, logger: logger}
}

// Search returns at most MergedLimit results: approved cases first
// (priority 1), then catalog entries (priority 2), each group ordered
// by descending score. An empty query yields an empty list. A failing
// case search degrades to catalog-only results.
func (e *Engine) Search(ctx context.Context, query string) []Result {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var results []Result

	userCases, err := e.cases.SearchApproved(ctx, query)
	if err != nil {
		// Degrade to base-only; the static catalog is always available.
		e.logger.Warn("case search failed, falling back to catalog only",
			zap.String("query", query),
			zap.Error(err))
	}
	for i := range userCases {
		results = append(results, Result{
			Source:   SourceUser,
			Priority: priorityUser,
			Score:    userCases[i].Score,
			Case:     &userCases[i],
		})
	}

	for _, entry := range knowledge.Search(query) {
		e := entry
		results = append(results, Result{
			Source:   SourceBase,
			Priority: priorityBase,
			Score:    e.Score,
			Entry:    &e.FormulaEntry,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Priority != results[j].Priority {
			return results[i].Priority < results[j].Priority
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > MergedLimit {
		results = results[:MergedLimit]
	}
	return results
}
