package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/internal/tui/browser"
	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/watch"
)

// NewTuiCmd creates the `bpnav tui` command.
func NewTuiCmd(eng **engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the blueprint tree interactively",
		Long: `Launch an interactive browser over the statement tree: fold and
unfold statements, cycle the status filter, search, and inspect details.
Activating a node prints its navigation target on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			e := *eng
			model := browser.New(e)

			// Live-reload when the extractor rewrites the cache. A broken
			// watch (missing cache dir, inotify limits) degrades to the r
			// key instead of blocking the browser.
			if w, err := watch.New(e.CachePath(), watch.DefaultDebounce); err != nil {
				logrus.Warnf("cache watch disabled: %v", err)
			} else {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()

				changes := make(chan struct{}, 1)
				go func() {
					_ = w.Run(ctx, func() {
						select {
						case changes <- struct{}{}:
						default:
						}
					})
				}()
				model = model.WithChangeFeed(changes)
			}

			p := tea.NewProgram(model, tea.WithAltScreen())

			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			if m, ok := final.(browser.Model); ok {
				if nav := m.NavTarget(); nav != nil {
					fmt.Println(nav.String())
				}
			}
			return nil
		},
	}
}
