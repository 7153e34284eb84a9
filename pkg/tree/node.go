package tree

import (
	"fmt"

	"github.com/leanware/bpnav/pkg/models"
)

// Status classifies a node for filtering purposes.
type Status int

const (
	// Formalized marks items that are flagged complete, fully proved, or
	// linked to at least one Lean declaration.
	Formalized Status = iota
	// NonFormalized marks everything else.
	NonFormalized
)

func (s Status) String() string {
	switch s {
	case Formalized:
		return "formalized"
	case NonFormalized:
		return "non-formalized"
	default:
		return "unknown"
	}
}

// StatusSet is the set of statuses a filter pass keeps.
type StatusSet struct {
	formalized    bool
	nonFormalized bool
}

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...Status) StatusSet {
	var set StatusSet
	for _, s := range statuses {
		switch s {
		case Formalized:
			set.formalized = true
		case NonFormalized:
			set.nonFormalized = true
		}
	}
	return set
}

// AllStatuses is the identity filter: every node matches.
func AllStatuses() StatusSet {
	return StatusSet{formalized: true, nonFormalized: true}
}

// Has reports whether the set includes the given status.
func (s StatusSet) Has(status Status) bool {
	if status == Formalized {
		return s.formalized
	}
	return s.nonFormalized
}

// Matches reports whether a node with the given formalization state is
// kept by this set.
func (s StatusSet) Matches(formalized bool) bool {
	if formalized {
		return s.formalized
	}
	return s.nonFormalized
}

// All reports whether both statuses are active.
func (s StatusSet) All() bool {
	return s.formalized && s.nonFormalized
}

// Empty reports whether no status is active.
func (s StatusSet) Empty() bool {
	return !s.formalized && !s.nonFormalized
}

// NavKind distinguishes the two ways a node can be activated.
type NavKind int

const (
	// NavFile jumps to a file and one-based line.
	NavFile NavKind = iota
	// NavSearch runs a literal text search over the blueprint workspace.
	NavSearch
)

// Navigation is where to jump when a node is activated.
type Navigation struct {
	Kind  NavKind
	File  string // NavFile
	Line  int    // NavFile, one-based
	Query string // NavSearch
}

// FileTarget builds a jump-to-source navigation target.
func FileTarget(file string, line int) *Navigation {
	return &Navigation{Kind: NavFile, File: file, Line: line}
}

// SearchTarget builds a literal-text-search navigation target.
func SearchTarget(query string) *Navigation {
	return &Navigation{Kind: NavSearch, Query: query}
}

func (n *Navigation) String() string {
	if n == nil {
		return ""
	}
	if n.Kind == NavFile {
		return fmt.Sprintf("%s:%d", n.File, n.Line)
	}
	return fmt.Sprintf("search %q", n.Query)
}

// Node is one row of the display tree: a blueprint statement, its proof,
// or a synthetic leaf for a linked Lean declaration.
type Node struct {
	Text        string
	Description string // joined lean_names, when present
	Detail      string // indented JSON of the source item, children/proof excluded
	Children    []*Node
	Expandable  bool
	Formalized  bool
	// PassThrough marks a node kept only to preserve ancestry for a
	// matching descendant. Rendered with a folder marker and no command.
	PassThrough bool
	// Source is a lookup reference to the originating record; nil for
	// synthetic declaration leaves.
	Source *models.Item
	Nav    *Navigation
}

// withChildren copies the node with a new child set, marking it as a
// pass-through when requested. The receiver is never modified.
func (n *Node) withChildren(children []*Node, passThrough bool) *Node {
	c := *n
	c.Children = children
	c.Expandable = len(children) > 0
	c.PassThrough = passThrough
	if passThrough {
		c.Nav = nil
	}
	return &c
}
