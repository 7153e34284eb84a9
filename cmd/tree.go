package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/tree"
)

var (
	formalizedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	passThroughStyle = lipgloss.NewStyle().Faint(true)
	declStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	descStyle        = lipgloss.NewStyle().Faint(true)
)

// parseStatusFlag maps the --status flag to a filter set.
func parseStatusFlag(status string) (tree.StatusSet, error) {
	switch status {
	case "", "all":
		return tree.AllStatuses(), nil
	case "formalized":
		return tree.NewStatusSet(tree.Formalized), nil
	case "pending":
		return tree.NewStatusSet(tree.NonFormalized), nil
	default:
		return tree.StatusSet{}, fmt.Errorf("unknown status %q (want all, formalized, or pending)", status)
	}
}

func NewTreeCmd(eng **engine.Engine) *cobra.Command {
	var (
		statusFlag string
		findFlag   string
		depthFlag  int
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the blueprint statement tree",
		Long: `Print the blueprint as a tree of statements, proofs, and linked
Lean declarations.

Examples:
  bpnav tree                       # everything
  bpnav tree --status pending      # only unformalized statements
  bpnav tree --find cauchy         # statements matching a text query
  bpnav tree --depth 2             # top two levels only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *eng

			set, err := parseStatusFlag(statusFlag)
			if err != nil {
				return err
			}
			e.SetStatusFilter(set)
			e.SetSearchQuery(findFlag)

			roots := e.Roots()
			if len(roots) == 0 {
				fmt.Println("No blueprint data. Run the extractor, then try again.")
				return nil
			}

			for _, root := range roots {
				printNode(root, 0, depthFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "all", "Filter by status: all, formalized, pending")
	cmd.Flags().StringVar(&findFlag, "find", "", "Filter by text query")
	cmd.Flags().IntVar(&depthFlag, "depth", 0, "Maximum depth to print (0 = unlimited)")

	return cmd
}

func printNode(n *tree.Node, depth, maxDepth int) {
	indent := strings.Repeat("  ", depth)

	var marker, text string
	switch {
	case n.PassThrough:
		marker = "▸"
		text = passThroughStyle.Render(n.Text)
	case n.Source == nil:
		// Declaration leaf.
		marker = "→"
		text = declStyle.Render(n.Text)
	case n.Formalized:
		marker = formalizedStyle.Render("✓")
		text = n.Text
	default:
		marker = pendingStyle.Render("○")
		text = n.Text
	}

	line := fmt.Sprintf("%s%s %s", indent, marker, text)
	if n.Description != "" {
		line += descStyle.Render(" [" + n.Description + "]")
	}
	if n.Nav != nil && n.Nav.Kind == tree.NavFile {
		line += descStyle.Render(" " + n.Nav.String())
	}
	fmt.Println(line)

	if maxDepth > 0 && depth+1 >= maxDepth {
		return
	}
	for _, child := range n.Children {
		printNode(child, depth+1, maxDepth)
	}
}
