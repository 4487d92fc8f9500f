// Package cli implements the agentdex command-line interface.
package cli

import (
	"os"

	"github.com/soyeahso/agentdex/internal/catalog"
	"github.com/soyeahso/agentdex/internal/config"
	"github.com/soyeahso/agentdex/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	catalogFile string
	logLevel    string
	jsonOut     bool

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentdex",
		Short: "agentdex — read-only catalog index of external AI agent projects",
		Long:  "agentdex loads an immutable catalog of AI agent research projects from a pipe-delimited table and answers lookup and filter queries.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level, "pretty")
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.agentdex/config.yaml)")
	cmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog table file (default: configured path or embedded dataset)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newListAgentsCmd())
	cmd.AddCommand(newGetAgentCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// loadCatalog resolves the catalog source and loads it.
// Precedence: --catalog flag, configured path, ~/.agentdex/catalog.md if
// present, then the embedded dataset.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	path := catalogFile
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		if _, err := os.Stat(paths.Catalog); err == nil {
			path = paths.Catalog
		}
	}
	if path == "" {
		return catalog.Embedded()
	}
	return catalog.LoadFile(path)
}
