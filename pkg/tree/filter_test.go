package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanware/bpnav/pkg/models"
)

// sameShape compares two forests structurally, ignoring pointer identity.
func sameShape(t *testing.T, want, got []*Node) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.Equal(t, want[i].Formalized, got[i].Formalized)
		assert.Equal(t, want[i].PassThrough, got[i].PassThrough)
		assert.Equal(t, want[i].Expandable, got[i].Expandable)
		sameShape(t, want[i].Children, got[i].Children)
	}
}

func chainFixture() []*Node {
	// root (unformalized) -> child (unformalized) -> grandchild (formalized)
	return Build([]*models.Item{{
		Label: "root",
		Children: []*models.Item{{
			Label: "child",
			Children: []*models.Item{{
				Label:  "grandchild",
				LeanOK: true,
			}},
		}},
	}})
}

func TestFilterBothStatusesIsIdentity(t *testing.T) {
	roots := chainFixture()
	filtered := FilterByStatus(roots, AllStatuses())
	sameShape(t, roots, filtered)

	for _, n := range filtered {
		assert.False(t, n.PassThrough)
		assert.NotNil(t, n.Nav)
	}
}

func TestFilterEmptySetYieldsNothing(t *testing.T) {
	roots := chainFixture()
	assert.Empty(t, FilterByStatus(roots, NewStatusSet()))
}

func TestFilterIdempotence(t *testing.T) {
	roots := chainFixture()
	set := NewStatusSet(Formalized)

	once := FilterByStatus(roots, set)
	twice := FilterByStatus(once, set)
	sameShape(t, once, twice)
}

func TestFilterPassThroughAncestors(t *testing.T) {
	roots := chainFixture()

	filtered := FilterByStatus(roots, NewStatusSet(Formalized))
	require.Len(t, filtered, 1)

	root := filtered[0]
	assert.Equal(t, "root", root.Text)
	assert.True(t, root.PassThrough)
	assert.Nil(t, root.Nav)
	assert.True(t, root.Expandable)

	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, "child", child.Text)
	assert.True(t, child.PassThrough)
	assert.Nil(t, child.Nav)

	require.Len(t, child.Children, 1)
	grandchild := child.Children[0]
	assert.Equal(t, "grandchild", grandchild.Text)
	assert.False(t, grandchild.PassThrough)
	assert.NotNil(t, grandchild.Nav)
	assert.False(t, grandchild.Expandable)
}

func TestFilterKeepsMatchingNodeWithNoSurvivors(t *testing.T) {
	// A unformalized with formalized child B: filtering for NonFormalized
	// keeps A (real command) and drops B entirely.
	roots := Build([]*models.Item{{
		Label:    "A",
		StmtType: "theorem",
		Children: []*models.Item{{
			Label:    "B",
			StmtType: "lemma",
			LeanOK:   true,
		}},
	}})

	filtered := FilterByStatus(roots, NewStatusSet(NonFormalized))
	require.Len(t, filtered, 1)

	a := filtered[0]
	assert.Equal(t, "A", a.Text)
	assert.False(t, a.PassThrough)
	assert.NotNil(t, a.Nav)
	assert.Empty(t, a.Children)
	assert.False(t, a.Expandable)
}

func TestFilterNeverMutatesInput(t *testing.T) {
	roots := chainFixture()

	_ = FilterByStatus(roots, NewStatusSet(Formalized))
	_ = FilterByStatus(roots, NewStatusSet())

	// The canonical tree is untouched: full depth, no pass-through marks.
	require.Len(t, roots, 1)
	assert.False(t, roots[0].PassThrough)
	assert.NotNil(t, roots[0].Nav)
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children, 1)
}

func TestFilterFormalizedFolderUnderPendingOnly(t *testing.T) {
	// A formalized statement with a pending descendant survives a
	// pending-only filter as a folder-like pass-through.
	roots := Build([]*models.Item{{
		Label:  "formalized-parent",
		LeanOK: true,
		Children: []*models.Item{{
			Label: "pending-child",
		}},
	}})

	filtered := FilterByStatus(roots, NewStatusSet(NonFormalized))
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].PassThrough)
	assert.Nil(t, filtered[0].Nav)
	require.Len(t, filtered[0].Children, 1)
	assert.Equal(t, "pending-child", filtered[0].Children[0].Text)
}
