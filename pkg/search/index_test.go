package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanware/bpnav/pkg/models"
)

func testItems() []*models.Item {
	return []*models.Item{
		{
			Label:         "thm:cauchy",
			StmtType:      "theorem",
			Title:         "Cauchy Completeness",
			ProcessedText: "Every Cauchy sequence converges.",
			LeanNames:     []string{"Real.cauchy_complete"},
			LeanOK:        true,
			Proof: &models.Item{
				Label:         "prf:cauchy",
				ProcessedText: "Standard diagonal argument.",
			},
			Children: []*models.Item{
				{
					Label:    "lem:bounded",
					StmtType: "lemma",
					Title:    "Cauchy sequences are bounded",
				},
			},
		},
		{
			Label:    "def:metric",
			StmtType: "definition",
			Title:    "Metric space",
		},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	require.NoError(t, idx.Reindex(testItems()))
	return idx
}

func TestReindexIncludesNestedStatements(t *testing.T) {
	idx := newTestIndex(t)

	count, err := idx.Count()
	require.NoError(t, err)
	// thm:cauchy, prf:cauchy, lem:bounded, def:metric
	assert.Equal(t, 4, count)
}

func TestSearch(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("cauchy", nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var labels []string
	for _, r := range results {
		labels = append(labels, r.Label)
	}
	assert.Contains(t, labels, "thm:cauchy")
	assert.NotContains(t, labels, "def:metric")
}

func TestSearchByStmtType(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("cauchy", &Options{StmtType: "lemma"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "lem:bounded", results[0].Label)
}

func TestReindexReplacesPreviousContents(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Reindex([]*models.Item{{Label: "thm:only", Title: "Only one"}}))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	results, err := idx.Search("cauchy", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLookup(t *testing.T) {
	idx := newTestIndex(t)

	r, err := idx.Lookup("def:metric")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "Metric space", r.Title)

	missing, err := idx.Lookup("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
