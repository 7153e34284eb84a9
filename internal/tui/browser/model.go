package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/tree"
)

// statusMode cycles through the status filter presets on the f key.
type statusMode int

const (
	statusAll statusMode = iota
	statusFormalized
	statusPending
)

func (s statusMode) String() string {
	switch s {
	case statusFormalized:
		return "formalized"
	case statusPending:
		return "pending"
	default:
		return "all"
	}
}

func (s statusMode) filter() tree.StatusSet {
	switch s {
	case statusFormalized:
		return tree.NewStatusSet(tree.Formalized)
	case statusPending:
		return tree.NewStatusSet(tree.NonFormalized)
	default:
		return tree.AllStatuses()
	}
}

// row is one visible line in the flattened tree view.
type row struct {
	node  *tree.Node
	id    string // stable across refilters: path of sibling indexes and texts
	depth int
}

// Model is the main model for the blueprint browser TUI.
type Model struct {
	eng   *engine.Engine
	roots []*tree.Node // current filtered view
	rows  []row        // flattened visible rows

	cursor       int
	scrollOffset int
	width        int
	height       int

	keys KeyMap
	help help.Model

	searchInput textinput.Model
	searching   bool

	statusMode statusMode
	collapsed  map[string]bool
	lastKey    string // for detecting z sequences

	showDetail bool
	detail     viewport.Model

	statusMessage string
	nav           *tree.Navigation // set when a node is activated

	changes <-chan struct{} // optional cache change feed
}

// New creates the browser model over an already-loaded engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Placeholder = "Search statements..."
	ti.CharLimit = 100

	return Model{
		eng:         eng,
		keys:        keys,
		help:        help.New(),
		searchInput: ti,
		collapsed:   make(map[string]bool),
		detail:      viewport.New(0, 0),
	}
}

// NavTarget returns the navigation target the user activated, if any.
// The tui command prints it after the program exits.
func (m Model) NavTarget() *tree.Navigation {
	return m.nav
}

// WithChangeFeed attaches a channel that signals extraction cache writes;
// the browser reloads automatically on each signal.
func (m Model) WithChangeFeed(changes <-chan struct{}) Model {
	m.changes = changes
	return m
}

// Init fetches the initial tree view and, when a change feed is attached,
// starts waiting on it.
func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshTreeCmd(m.eng), waitForChangeCmd(m.changes))
}

// rebuildRows flattens the current forest into visible rows, honoring the
// fold map.
func (m *Model) rebuildRows() {
	m.rows = nil
	m.flatten(m.roots, "", 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) flatten(nodes []*tree.Node, parentID string, depth int) {
	for i, n := range nodes {
		id := fmt.Sprintf("%s/%d:%s", parentID, i, n.Text)
		m.rows = append(m.rows, row{node: n, id: id, depth: depth})
		if len(n.Children) > 0 && !m.collapsed[id] {
			m.flatten(n.Children, id, depth+1)
		}
	}
}

func (m *Model) clampScroll() {
	h := m.viewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// viewportHeight is the number of tree rows that fit between the header
// and the footer.
func (m *Model) viewportHeight() int {
	reserved := 5 // header, blank, blank, status line, help line
	if m.searching {
		reserved++
	}
	h := m.height - reserved
	if h < 1 {
		h = 10
	}
	return h
}

func (m *Model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}
