package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/project"
	"github.com/leanware/bpnav/pkg/search"
)

func NewSearchCmd(eng **engine.Engine, proj **project.Project) *cobra.Command {
	var (
		searchType  string
		searchLimit int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search blueprint statements",
		Long: `Search the statement index by label, title, text, or Lean name.

Examples:
  bpnav search "cauchy sequence"
  bpnav search completeness -t theorem`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *eng

			idx, err := openFreshIndex(*proj, e)
			if err != nil {
				return err
			}
			defer idx.Close()

			query := strings.Join(args, " ")
			limit := searchLimit
			if limit == 0 {
				limit = viper.GetInt("search_limit")
			}

			results, err := idx.Search(query, &search.Options{
				StmtType: searchType,
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			if len(results) == 0 {
				fmt.Println("No results found.")
				return nil
			}

			fmt.Printf("Found %d result(s):\n\n", len(results))
			for i, r := range results {
				fmt.Printf("%d. %s", i+1, r.Label)
				if r.StmtType != "" {
					fmt.Printf(" (%s)", r.StmtType)
				}
				fmt.Println()
				if r.Title != "" {
					fmt.Printf("   %s\n", r.Title)
				}
				if r.Snippet != "" {
					fmt.Printf("   %s\n", r.Snippet)
				}
				if r.LeanNames != "" {
					fmt.Printf("   Lean: %s\n", r.LeanNames)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchType, "type", "t", "", "Filter by statement type (theorem, lemma, definition, ...)")
	cmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results")

	return cmd
}

// openFreshIndex opens the project index and rebuilds it when it lags the
// loaded cache (or has never been built).
func openFreshIndex(proj *project.Project, e *engine.Engine) (*search.Index, error) {
	idx, err := openIndex(proj)
	if err != nil {
		return nil, err
	}

	count, err := idx.Count()
	if err != nil {
		idx.Close()
		return nil, err
	}
	if count == 0 && len(e.Items()) > 0 {
		if err := idx.Reindex(e.Items()); err != nil {
			idx.Close()
			return nil, fmt.Errorf("reindex: %w", err)
		}
	}
	return idx, nil
}
