package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/tree"
)

type treeRefreshedMsg struct {
	roots []*tree.Node
}

type reloadFailedMsg struct {
	err error
}

type cacheChangedMsg struct{}

// refreshTreeCmd re-reads the filtered view from the engine. The engine's
// transforms are pure and fast, so this is safe to fire on every filter
// change.
func refreshTreeCmd(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		return treeRefreshedMsg{roots: e.Roots()}
	}
}

// reloadCacheCmd rebuilds the canonical tree from the cache file. On
// failure the engine keeps its previous tree and the error is surfaced in
// the status line.
func reloadCacheCmd(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		if err := e.Load(); err != nil {
			return reloadFailedMsg{err: err}
		}
		return treeRefreshedMsg{roots: e.Roots()}
	}
}

// waitForChangeCmd blocks on the cache change feed and turns the next
// signal into a message. The handler re-arms it, one wait at a time.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return cacheChangedMsg{}
	}
}
