package knowledge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dlformula/assistant/models"
)

// Scoring weights. Treated as part of the external contract; do not tune
// without product input.
const (
	nameMatchBonus    = 10
	descriptionBonus  = 3
	keywordBonus      = 5
	minTermLength     = 3 // terms shorter than this are noise and dropped
	// SearchLimit caps base-only catalog search results
	SearchLimit = 10
)

// ScoredEntry is a catalog entry annotated with its relevance score
type ScoredEntry struct {
	models.FormulaEntry
	Score int `json:"score"`
}

// SplitTerms lowercases a query and splits it into search terms,
// discarding terms shorter than three characters.
func SplitTerms(query string) []string {
	var terms []string
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(term) >= minTermLength {
			terms = append(terms, term)
		}
	}
	return terms
}

// Score computes the relevance of one catalog entry for a query:
// +10 when the entry name contains the full query, +3 per term found in
// the description, +5 per keyword containing a term. Deterministic;
// returns 0 when nothing matches.
func Score(query string, entry models.FormulaEntry) int {
	lowerQuery := strings.ToLower(query)
	terms := SplitTerms(query)

	score := 0

	if strings.Contains(strings.ToLower(entry.Name), lowerQuery) {
		score += nameMatchBonus
	}

	lowerDescription := strings.ToLower(entry.Description)
	for _, term := range terms {
		if strings.Contains(lowerDescription, term) {
			score += descriptionBonus
		}
		for _, keyword := range entry.Keywords {
			if strings.Contains(keyword, term) {
				score += keywordBonus
			}
		}
	}

	return score
}

// Search ranks catalog entries against a query and returns at most
// SearchLimit results ordered by descending score. Entries scoring zero
// are excluded; ties keep catalog order.
func Search(query string) []ScoredEntry {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var results []ScoredEntry
	for _, entry := range Entries() {
		if s := Score(query, entry); s > 0 {
			results = append(results, ScoredEntry{FormulaEntry: entry, Score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > SearchLimit {
		results = results[:SearchLimit]
	}
	return results
}
