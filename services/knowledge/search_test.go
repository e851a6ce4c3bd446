package knowledge

import (
	"testing"

	"github.com/dlformula/assistant/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	entries := Entries()
	require.NotEmpty(t, entries)

	names := make(map[string]bool)
	for _, e := range entries {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Syntax)
		assert.NotEmpty(t, e.Keywords)
		assert.False(t, names[e.Name], "duplicate catalog name %s", e.Name)
		names[e.Name] = true
	}

	assert.Len(t, Categories(), 7)
}

func TestLookup(t *testing.T) {
	entry, ok := Lookup("ROUND")
	require.True(t, ok)
	assert.Equal(t, "ROUND( number [ , precision ] )", entry.Syntax)

	_, ok = Lookup("NO_SUCH_FUNC")
	assert.False(t, ok)
}

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "drops short terms", query: "округление до", want: []string{"округление"}},
		{name: "lowercases", query: "СУММА Продаж", want: []string{"сумма", "продаж"}},
		{name: "all noise", query: "до по из", want: nil},
		{name: "empty", query: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTerms(tt.query))
		})
	}
}

func TestScore(t *testing.T) {
	round, ok := Lookup("ROUND")
	require.True(t, ok)

	// "до" is dropped by the term filter; "округление" hits the
	// description (+3) and the keyword (+5).
	assert.GreaterOrEqual(t, Score("округление до", round), 8)

	// Full-query name substring match
	assert.GreaterOrEqual(t, Score("round", round), 10)

	// Nothing matches
	assert.Equal(t, 0, Score("погода завтра", round))
}

func TestScore_Deterministic(t *testing.T) {
	entry, ok := Lookup("SUM_IF")
	require.True(t, ok)

	first := Score("сумма с условием", entry)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score("сумма с условием", entry))
	}
}

func TestSearch(t *testing.T) {
	results := Search("округление до")
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), SearchLimit)

	// Results are sorted by descending score
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	found := false
	for _, r := range results {
		assert.Positive(t, r.Score)
		if r.Name == "ROUND" {
			found = true
			assert.GreaterOrEqual(t, r.Score, 8)
		}
	}
	assert.True(t, found, "ROUND should appear for an округление query")
}

func TestSearch_EmptyQuery(t *testing.T) {
	assert.Empty(t, Search(""))
	assert.Empty(t, Search("   "))
}

func TestSearch_NoMatches(t *testing.T) {
	assert.Empty(t, Search("qwertyuiop"))
}

func TestSearch_StableTies(t *testing.T) {
	// Both YEAR and MONTH score identically for this query; catalog
	// order must be preserved between them.
	results := Search("извлечение номер")
	var order []string
	for _, r := range results {
		if r.Category == models.CategoryDate {
			order = append(order, r.Name)
		}
	}
	require.NotEmpty(t, order)

	yearIdx, monthIdx := -1, -1
	for i, n := range order {
		switch n {
		case "YEAR":
			yearIdx = i
		case "MONTH":
			monthIdx = i
		}
	}
	if yearIdx >= 0 && monthIdx >= 0 {
		assert.Less(t, yearIdx, monthIdx)
	}
}
