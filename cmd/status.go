package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/tree"
)

func NewStatusCmd(eng **engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show formalization progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *eng
			stats := e.Stats()

			if stats.Items == 0 {
				fmt.Println("No blueprint data. Run the extractor, then try again.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STATEMENT\tFORMALIZED\tTOTAL")
			for _, root := range e.Roots() {
				formalized, total := countSubtree(root)
				fmt.Fprintf(w, "%s\t%d\t%d\n", root.Text, formalized, total)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d/%d nodes formalized, %d record(s) loaded", stats.Formalized, stats.Nodes, stats.Items)
			if stats.SkippedLines > 0 {
				fmt.Printf(", %d malformed line(s) skipped", stats.SkippedLines)
			}
			if stats.DroppedUnlabeled > 0 {
				fmt.Printf(", %d unlabeled record(s) ignored", stats.DroppedUnlabeled)
			}
			fmt.Println()
			return nil
		},
	}
}

func countSubtree(n *tree.Node) (formalized, total int) {
	total = 1
	if n.Formalized {
		formalized = 1
	}
	for _, child := range n.Children {
		f, t := countSubtree(child)
		formalized += f
		total += t
	}
	return formalized, total
}
