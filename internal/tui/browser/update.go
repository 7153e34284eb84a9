package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leanware/bpnav/pkg/tree"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail.Width = msg.Width - 4
		m.detail.Height = m.viewportHeight()
		m.clampScroll()
		return m, nil

	case treeRefreshedMsg:
		m.roots = msg.roots
		m.rebuildRows()
		return m, nil

	case reloadFailedMsg:
		m.statusMessage = fmt.Sprintf("Reload failed, keeping previous tree: %v", msg.err)
		return m, nil

	case cacheChangedMsg:
		m.statusMessage = "Cache changed, reloading..."
		return m, tea.Batch(reloadCacheCmd(m.eng), waitForChangeCmd(m.changes))

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		if m.showDetail {
			return m.updateDetail(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

// updateSearching handles keys while the search input is focused.
func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.eng.SetSearchQuery("")
		return m, refreshTreeCmd(m.eng)
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.eng.SetSearchQuery(m.searchInput.Value())
		return m, refreshTreeCmd(m.eng)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// updateDetail handles keys while the detail overlay is open.
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Detail), msg.String() == "esc", key.Matches(msg, m.keys.Quit):
		m.showDetail = false
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// z starts a vim-style fold sequence.
	if m.lastKey == "z" {
		m.lastKey = ""
		switch msg.String() {
		case "a":
			m.toggleFold()
		case "M":
			m.foldAll()
		case "R":
			m.collapsed = make(map[string]bool)
			m.rebuildRows()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampScroll()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.clampScroll()

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.viewportHeight() / 2
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.viewportHeight() / 2
		if m.cursor > len(m.rows)-1 {
			m.cursor = len(m.rows) - 1
		}
		m.clampScroll()

	case key.Matches(msg, m.keys.GoToTop):
		// gg like vim; a single g is enough here.
		m.cursor = 0
		m.clampScroll()

	case key.Matches(msg, m.keys.GoToBottom):
		m.cursor = len(m.rows) - 1
		m.clampScroll()

	case key.Matches(msg, m.keys.ToggleFold):
		m.toggleFold()

	case key.Matches(msg, m.keys.FoldPrefix):
		m.lastKey = "z"

	case key.Matches(msg, m.keys.CycleStatus):
		m.statusMode = (m.statusMode + 1) % 3
		m.eng.SetStatusFilter(m.statusMode.filter())
		m.statusMessage = "Status filter: " + m.statusMode.String()
		return m, refreshTreeCmd(m.eng)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.ClearSearch):
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.eng.SetSearchQuery("")
			return m, refreshTreeCmd(m.eng)
		}

	case key.Matches(msg, m.keys.Detail):
		if r := m.currentRow(); r != nil && r.node.Detail != "" {
			m.detail.SetContent(r.node.Detail)
			m.detail.GotoTop()
			m.showDetail = true
		}

	case key.Matches(msg, m.keys.Reload):
		m.statusMessage = "Reloading..."
		return m, reloadCacheCmd(m.eng)

	case key.Matches(msg, m.keys.Activate):
		if r := m.currentRow(); r != nil {
			if r.node.Nav != nil {
				m.nav = r.node.Nav
				return m, tea.Quit
			}
			// Pass-through and nav-less nodes just fold.
			m.toggleFold()
		}
	}

	return m, nil
}

func (m *Model) toggleFold() {
	r := m.currentRow()
	if r == nil || len(r.node.Children) == 0 {
		return
	}
	m.collapsed[r.id] = !m.collapsed[r.id]
	m.rebuildRows()
}

func (m *Model) foldAll() {
	var fold func(nodes []*tree.Node, parentID string)
	fold = func(nodes []*tree.Node, parentID string) {
		for i, n := range nodes {
			id := fmt.Sprintf("%s/%d:%s", parentID, i, n.Text)
			if len(n.Children) > 0 {
				m.collapsed[id] = true
				fold(n.Children, id)
			}
		}
	}
	fold(m.roots, "")
	m.cursor = 0
	m.rebuildRows()
}
