package tree

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterByText narrows a forest to nodes whose text or description
// contains the query, case-folded, keeping non-matching ancestors of
// matches as pass-through nodes (same rule as status filtering). An empty
// query is the identity transform. The input forest is never mutated.
func FilterByText(nodes []*Node, query string) []*Node {
	q := strings.TrimSpace(query)
	if q == "" {
		return nodes
	}
	// cases.Caser is stateful, so build one per filter pass.
	fold := cases.Fold()
	return filterText(nodes, fold.String(q), fold)
}

func filterText(nodes []*Node, folded string, fold cases.Caser) []*Node {
	var out []*Node
	for _, n := range nodes {
		kids := filterText(n.Children, folded, fold)
		switch {
		case strings.Contains(fold.String(n.Text), folded),
			n.Description != "" && strings.Contains(fold.String(n.Description), folded):
			out = append(out, n.withChildren(kids, n.PassThrough))
		case len(kids) > 0:
			out = append(out, n.withChildren(kids, true))
		}
	}
	return out
}
