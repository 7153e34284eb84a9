package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leanware/bpnav/cmd"
	"github.com/leanware/bpnav/cmd/config"
	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/project"
)

var (
	eng  *engine.Engine
	proj *project.Project
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bpnav",
		Short:         "Navigate Lean blueprint projects",
		Long:          "bpnav reads the line-delimited JSON cache written by a blueprint extractor and renders the project as a filterable, searchable statement tree.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		logrus.SetOutput(os.Stderr)
		if config.Verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}

		config.InitConfig()

		// The version command works outside any blueprint project.
		if c.Name() == "version" {
			return nil
		}

		var err error
		eng, proj, err = config.InitEngine()
		return err
	}

	rootCmd.AddCommand(cmd.NewTreeCmd(&eng))
	rootCmd.AddCommand(cmd.NewSearchCmd(&eng, &proj))
	rootCmd.AddCommand(cmd.NewShowCmd(&eng))
	rootCmd.AddCommand(cmd.NewStatusCmd(&eng))
	rootCmd.AddCommand(cmd.NewReindexCmd(&eng, &proj))
	rootCmd.AddCommand(cmd.NewWatchCmd(&eng))
	rootCmd.AddCommand(cmd.NewTuiCmd(&eng))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
