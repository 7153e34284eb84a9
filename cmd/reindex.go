package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/cmd/config"
	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/project"
	"github.com/leanware/bpnav/pkg/search"
)

// openIndex is a thin seam over config.OpenIndex so commands share one
// construction path.
func openIndex(proj *project.Project) (*search.Index, error) {
	return config.OpenIndex(proj)
}

func NewReindexCmd(eng **engine.Engine, proj **project.Project) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the statement search index from the extraction cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *eng

			idx, err := openIndex(*proj)
			if err != nil {
				return err
			}
			defer idx.Close()

			if err := idx.Reindex(e.Items()); err != nil {
				return fmt.Errorf("reindex: %w", err)
			}

			count, err := idx.Count()
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %d statement(s).\n", count)
			return nil
		},
	}
}
