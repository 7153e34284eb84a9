package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCache(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extracted-blueprint.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCache(t, `{"label": "thm:a", "stmt_type": "theorem"}

{not json
{"label": "lem:b", "stmt_type": "lemma", "leanok": true}
{"stmt_type": "lemma"}
{"label": null, "stmt_type": "remark"}
`)

	res, err := Load(path)
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "thm:a", res.Items[0].Label)
	assert.Equal(t, "lem:b", res.Items[1].Label)
	assert.Equal(t, 1, res.SkippedLines)
	assert.Equal(t, 2, res.DroppedUnlabeled)
}

func TestLoadMissingFile(t *testing.T) {
	res, err := Load(filepath.Join(t.TempDir(), "does-not-exist.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.SkippedLines)
}

func TestLoadReadFailure(t *testing.T) {
	// A directory opens fine but fails on read, exercising the
	// recoverable-error path that keeps the caller's previous tree.
	dir := t.TempDir()
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadWholeFileArray(t *testing.T) {
	// The raw extractor output is a single JSON array rather than one
	// record per line; both forms load the same way.
	path := writeCache(t, `[
		{"label": "thm:a", "leanok": true},
		{"stmt_type": "remark"},
		{"label": "def:b"}
	]`)

	res, err := Load(path)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "thm:a", res.Items[0].Label)
	assert.Equal(t, "def:b", res.Items[1].Label)
	assert.Equal(t, 1, res.DroppedUnlabeled)
}

func TestLoadWholeFileArrayMalformed(t *testing.T) {
	path := writeCache(t, `[{"label": "thm:a"`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadPreservesInputOrder(t *testing.T) {
	path := writeCache(t, `{"label": "c"}
{"label": "a"}
{"label": "b"}
`)

	res, err := Load(path)
	require.NoError(t, err)
	require.Len(t, res.Items, 3)

	var labels []string
	for _, it := range res.Items {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"c", "a", "b"}, labels)
}
