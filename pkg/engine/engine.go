package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/leanware/bpnav/pkg/blueprint"
	"github.com/leanware/bpnav/pkg/models"
	"github.com/leanware/bpnav/pkg/tree"
)

// Stats summarizes the currently loaded blueprint.
type Stats struct {
	Items            int // labeled records loaded
	SkippedLines     int
	DroppedUnlabeled int
	Nodes            int // display nodes, declaration leaves included
	Formalized       int // display nodes classified as formalized
}

// Engine owns the canonical display tree built from the extraction cache
// and serves filtered views of it. Rebuilds replace the root set with a
// single assignment, so a caller always sees either the previous complete
// tree or the next one. All methods are intended for use from a single
// goroutine, matching the pure, non-suspending nature of the transforms.
type Engine struct {
	cachePath string

	items            []*models.Item
	roots            []*tree.Node // canonical, unfiltered
	skippedLines     int
	droppedUnlabeled int

	active tree.StatusSet
	query  string

	subscribers []func()
}

// New creates an engine for the given cache file. No data is loaded until
// Load is called; both statuses start active.
func New(cachePath string) *Engine {
	return &Engine{
		cachePath: cachePath,
		active:    tree.AllStatuses(),
	}
}

// CachePath returns the extraction cache file this engine reads.
func (e *Engine) CachePath() string {
	return e.cachePath
}

// Load rebuilds the canonical tree from the cache file. On a read error
// the previous tree is left intact and the error returned. A missing file
// loads as an empty tree. Subscribers are notified after every successful
// load, including empty ones.
func (e *Engine) Load() error {
	res, err := blueprint.Load(e.cachePath)
	if err != nil {
		return err
	}

	roots := tree.Build(res.Items)
	e.items = res.Items
	e.roots = roots
	e.skippedLines = res.SkippedLines
	e.droppedUnlabeled = res.DroppedUnlabeled

	logrus.WithFields(logrus.Fields{
		"items":   len(res.Items),
		"skipped": res.SkippedLines,
	}).Debug("blueprint tree rebuilt")

	e.notify()
	return nil
}

// Roots returns the root nodes with the current status and text filters
// applied. The canonical tree is never mutated; repeated calls with the
// same configuration yield equivalent views.
func (e *Engine) Roots() []*tree.Node {
	return tree.FilterByText(tree.FilterByStatus(e.roots, e.active), e.query)
}

// Children returns a node's children. Nodes handed out by Roots or
// Children already carry their filtered child set.
func (e *Engine) Children(n *tree.Node) []*tree.Node {
	if n == nil {
		return nil
	}
	return n.Children
}

// Items returns the loaded records, for indexing and lookups.
func (e *Engine) Items() []*models.Item {
	return e.items
}

// FindByLabel walks the loaded records for the item with the given label.
func (e *Engine) FindByLabel(label string) *models.Item {
	if label == "" {
		return nil
	}
	return findByLabel(e.items, label)
}

func findByLabel(items []*models.Item, label string) *models.Item {
	for _, it := range items {
		if it.Label == label {
			return it
		}
		if it.Proof != nil {
			if found := findByLabel([]*models.Item{it.Proof}, label); found != nil {
				return found
			}
		}
		if found := findByLabel(it.Children, label); found != nil {
			return found
		}
	}
	return nil
}

// StatusFilter returns the active status set.
func (e *Engine) StatusFilter() tree.StatusSet {
	return e.active
}

// SetStatusFilter replaces the active status set and notifies subscribers.
func (e *Engine) SetStatusFilter(set tree.StatusSet) {
	e.active = set
	e.notify()
}

// SearchQuery returns the current text filter query.
func (e *Engine) SearchQuery() string {
	return e.query
}

// SetSearchQuery stores a text filter query and notifies subscribers.
func (e *Engine) SetSearchQuery(query string) {
	e.query = query
	e.notify()
}

// Subscribe registers a callback fired after every rebuild or filter
// change. Callbacks run synchronously in registration order with no
// ordering guarantee across rapid repeated triggers; a display layer is
// expected to coalesce or re-render fully each time.
func (e *Engine) Subscribe(fn func()) {
	e.subscribers = append(e.subscribers, fn)
}

func (e *Engine) notify() {
	for _, fn := range e.subscribers {
		fn()
	}
}

// Stats recomputes summary counts for the loaded blueprint.
func (e *Engine) Stats() Stats {
	res := Stats{
		Items:            len(e.items),
		SkippedLines:     e.skippedLines,
		DroppedUnlabeled: e.droppedUnlabeled,
	}
	countNodes(e.roots, &res)
	return res
}

func countNodes(nodes []*tree.Node, s *Stats) {
	for _, n := range nodes {
		s.Nodes++
		if n.Formalized {
			s.Formalized++
		}
		countNodes(n.Children, s)
	}
}
