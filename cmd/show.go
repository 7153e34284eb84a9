package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/pkg/engine"
)

func NewShowCmd(eng **engine.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "show <label>",
		Short: "Show one statement's fields and navigation targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := *eng
			label := args[0]

			item := e.FindByLabel(label)
			if item == nil {
				return fmt.Errorf("no statement with label %q", label)
			}

			detail, err := item.DetailJSON()
			if err != nil {
				return fmt.Errorf("render detail: %w", err)
			}
			fmt.Println(detail)

			if len(item.Declarations) > 0 {
				fmt.Println("\nLean declarations:")
				for _, d := range item.Declarations {
					if d.Resolvable() {
						fmt.Printf("  %s  %s:%d\n", d.FullName, d.RealFile, d.Line())
					} else {
						fmt.Printf("  %s  (no source location)\n", d.FullName)
					}
				}
			}
			return nil
		},
	}
}
