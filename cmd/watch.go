package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/watch"
)

func NewWatchCmd(eng **engine.Engine) *cobra.Command {
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the tree whenever the extraction cache changes",
		Long: `Watch the extraction cache file and rebuild the statement tree after
each extractor run, printing a progress summary. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *eng

			printSummary(e)

			w, err := watch.New(e.CachePath(), time.Duration(debounceMs)*time.Millisecond)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s\n", e.CachePath())
			err = w.Run(ctx, func() {
				if err := e.Load(); err != nil {
					fmt.Printf("reload failed, keeping previous tree: %v\n", err)
					return
				}
				printSummary(e)
			})
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Quiet period in milliseconds before reloading")

	return cmd
}

func printSummary(e *engine.Engine) {
	stats := e.Stats()
	fmt.Printf("[%s] %d statement(s), %d/%d nodes formalized\n",
		time.Now().Format("15:04:05"), stats.Items, stats.Formalized, stats.Nodes)
}
