package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leanware/bpnav/pkg/tree"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	formalizedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	passThroughStyle = lipgloss.NewStyle().Faint(true)
	declStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	mutedStyle       = lipgloss.NewStyle().Faint(true)
	detailStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m Model) View() string {
	if m.help.ShowAll {
		return "\n" + m.help.View(m.keys)
	}

	header := headerStyle.Render("Blueprint Browser")
	if m.statusMode != statusAll || m.eng.SearchQuery() != "" {
		filters := "[" + m.statusMode.String()
		if q := m.eng.SearchQuery(); q != "" {
			filters += fmt.Sprintf(" · %q", q)
		}
		filters += "]"
		header += " " + infoStyle.Render(filters)
	}

	var body string
	if m.showDetail {
		body = detailStyle.Render(m.detail.View())
	} else {
		body = m.renderTree()
	}

	var searchLine string
	if m.searching {
		searchLine = m.searchInput.View() + "\n"
	}

	status := m.statusMessage
	if status == "" {
		stats := m.eng.Stats()
		status = mutedStyle.Render(fmt.Sprintf("%d statements · %d/%d formalized",
			stats.Items, stats.Formalized, stats.Nodes))
	}

	footer := m.help.View(m.keys)

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		searchLine+body,
		"",
		status,
		footer,
	)
}

func (m Model) renderTree() string {
	if len(m.rows) == 0 {
		return mutedStyle.Render("No matching statements. (r reloads the extraction cache)")
	}

	var b strings.Builder

	viewportHeight := m.viewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("▶ ")
		}

		indent := strings.Repeat("  ", r.depth)

		foldIndicator := "  "
		if len(r.node.Children) > 0 {
			if m.collapsed[r.id] {
				foldIndicator = "▶ "
			} else {
				foldIndicator = "▼ "
			}
		}

		line := cursor + indent + foldIndicator + renderNodeText(r.node)
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.rows) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
	}

	return b.String()
}

func renderNodeText(n *tree.Node) string {
	var text string
	switch {
	case n.PassThrough:
		text = "🗀 " + passThroughStyle.Render(n.Text)
	case n.Source == nil:
		text = declStyle.Render(n.Text)
	case n.Formalized:
		text = formalizedStyle.Render("✓ ") + n.Text
	default:
		text = pendingStyle.Render("○ ") + n.Text
	}
	if n.Description != "" {
		text += mutedStyle.Render(" [" + n.Description + "]")
	}
	return text
}
