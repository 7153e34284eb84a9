package tree

// FilterByStatus produces a fresh forest containing the nodes whose
// formalization status is in the active set, plus pass-through copies of
// non-matching ancestors that still have surviving descendants. The input
// forest is never mutated. Filtering with both statuses active is the
// identity transform; filtering with the empty set yields nothing.
func FilterByStatus(nodes []*Node, active StatusSet) []*Node {
	var out []*Node
	for _, n := range nodes {
		kids := FilterByStatus(n.Children, active)
		switch {
		case active.Matches(n.Formalized):
			out = append(out, n.withChildren(kids, false))
		case len(kids) > 0:
			// Kept only for structural context: folder marker, no command.
			out = append(out, n.withChildren(kids, true))
		}
	}
	return out
}
