package tree

import (
	"strings"

	"github.com/leanware/bpnav/pkg/models"
)

// Classify reports whether an item counts as formalized: it is flagged
// complete, marked fully proved, or linked to at least one declaration.
func Classify(it *models.Item) bool {
	return it.LeanOK || it.FullyProved || len(it.Declarations) > 0
}

// Build converts extracted blueprint records into a display forest. Input
// order is preserved at every level; each node's children appear in the
// fixed order proof, structural children, declaration leaves. The input
// items are never modified.
func Build(items []*models.Item) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, buildNode(it))
	}
	return nodes
}

func buildNode(it *models.Item) *Node {
	n := &Node{
		Text:       it.DisplayTitle(),
		Formalized: Classify(it),
		Source:     it,
	}
	if len(it.LeanNames) > 0 {
		n.Description = strings.Join(it.LeanNames, ", ")
	}
	if detail, err := it.DetailJSON(); err == nil {
		n.Detail = detail
	}
	if it.Label != "" {
		n.Nav = SearchTarget(it.Label)
	}

	if it.Proof != nil {
		n.Children = append(n.Children, buildNode(it.Proof))
	}
	for _, child := range it.Children {
		n.Children = append(n.Children, buildNode(child))
	}
	for _, decl := range it.Declarations {
		// Entries without a resolved file and line can't be jumped to.
		if !decl.Resolvable() {
			continue
		}
		n.Children = append(n.Children, &Node{
			Text:       "Lean: " + decl.FullName,
			Formalized: true,
			Nav:        FileTarget(decl.RealFile, decl.Line()),
		})
	}

	n.Expandable = len(n.Children) > 0
	return n
}
