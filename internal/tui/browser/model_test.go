package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanware/bpnav/pkg/engine"
)

func testModel(t *testing.T) Model {
	t.Helper()

	cache := `{"label": "thm:a", "children": [{"label": "lem:b"}, {"label": "lem:c"}]}
{"label": "def:d"}
`
	path := filepath.Join(t.TempDir(), "extracted-blueprint.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(cache), 0644))

	eng := engine.New(path)
	require.NoError(t, eng.Load())

	m := New(eng)
	m.roots = eng.Roots()
	m.rebuildRows()
	return m
}

func TestFlattenExpandsEverythingByDefault(t *testing.T) {
	m := testModel(t)

	var texts []string
	for _, r := range m.rows {
		texts = append(texts, r.node.Text)
	}
	assert.Equal(t, []string{"thm:a", "lem:b", "lem:c", "def:d"}, texts)

	assert.Equal(t, 0, m.rows[0].depth)
	assert.Equal(t, 1, m.rows[1].depth)
	assert.Equal(t, 0, m.rows[3].depth)
}

func TestFoldHidesSubtree(t *testing.T) {
	m := testModel(t)

	m.cursor = 0
	m.toggleFold()

	var texts []string
	for _, r := range m.rows {
		texts = append(texts, r.node.Text)
	}
	assert.Equal(t, []string{"thm:a", "def:d"}, texts)

	m.toggleFold()
	assert.Len(t, m.rows, 4)
}

func TestFoldAllAndCursorClamp(t *testing.T) {
	m := testModel(t)
	m.cursor = 3

	m.foldAll()
	assert.Len(t, m.rows, 2)
	assert.Equal(t, 0, m.cursor)

	m.collapsed = make(map[string]bool)
	m.rebuildRows()
	assert.Len(t, m.rows, 4)
}

func TestChangeFeedTriggersReload(t *testing.T) {
	m := testModel(t)

	changes := make(chan struct{}, 1)
	m = m.WithChangeFeed(changes)

	next, cmd := m.Update(cacheChangedMsg{})
	m = next.(Model)
	assert.Equal(t, "Cache changed, reloading...", m.statusMessage)
	require.NotNil(t, cmd)

	// Without a feed attached there is nothing to wait on.
	assert.Nil(t, waitForChangeCmd(nil))

	changes <- struct{}{}
	msg := waitForChangeCmd(changes)()
	assert.Equal(t, cacheChangedMsg{}, msg)
}

func TestStatusModeCycle(t *testing.T) {
	assert.Equal(t, "all", statusAll.String())
	assert.Equal(t, "formalized", statusFormalized.String())
	assert.Equal(t, "pending", statusPending.String())

	assert.True(t, statusAll.filter().All())
	assert.False(t, statusFormalized.filter().Matches(false))
	assert.True(t, statusPending.filter().Matches(false))
}
