package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leanware/bpnav/pkg/engine"
	"github.com/leanware/bpnav/pkg/project"
	"github.com/leanware/bpnav/pkg/search"
)

var (
	cfgFile string
	// ProjectOverride points commands at a blueprint project other than
	// the one containing the working directory.
	ProjectOverride string
	// Verbose raises the log level to debug.
	Verbose bool
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "bpnav")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BPNAV")

	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "bpnav"))
	viper.SetDefault("search_limit", 50)

	// A missing config file is fine; env vars and defaults apply.
	_ = viper.ReadInConfig()
}

// InitEngine locates the blueprint project and loads its extraction cache.
// A missing cache file is not an error; the engine starts empty.
func InitEngine() (*engine.Engine, *project.Project, error) {
	start := ProjectOverride
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("get working directory: %w", err)
		}
		start = cwd
	}

	proj, err := project.Find(start)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(proj.CachePath())
	if err := eng.Load(); err != nil {
		return nil, nil, fmt.Errorf("load blueprint cache: %w", err)
	}
	return eng, proj, nil
}

// OpenIndex opens the statement search index under the data directory,
// namespaced by project root so projects don't mix.
func OpenIndex(proj *project.Project) (*search.Index, error) {
	dataDir := viper.GetString("data_dir")
	indexDir := filepath.Join(dataDir, "index")
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	name := filepath.Base(proj.Root) + ".db"
	return search.NewIndex(filepath.Join(indexDir, name))
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/bpnav/config.yaml)")
	cmd.PersistentFlags().StringVarP(&ProjectOverride, "project", "P", "", "Blueprint project directory (default: walk up from cwd)")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable debug logging")
}
