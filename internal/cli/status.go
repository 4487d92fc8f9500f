package cli

import (
	"fmt"
	"os"

	"github.com/soyeahso/agentdex/internal/config"
	"github.com/soyeahso/agentdex/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show agentdex status and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("agentdex %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			cfg, err := config.Load(paths.Config)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("Config:  not found (using defaults)")
					cfg = config.Defaults()
				} else {
					fmt.Printf("Config:  error loading: %v\n", err)
					return nil
				}
			}

			// Catalog source and summary
			source := "embedded dataset"
			switch {
			case catalogFile != "":
				source = catalogFile
			case cfg.Catalog.Path != "":
				source = cfg.Catalog.Path
			default:
				if _, statErr := os.Stat(paths.Catalog); statErr == nil {
					source = paths.Catalog
				}
			}
			fmt.Printf("Catalog: %s\n", source)

			cat, err := loadCatalog(cfg)
			if err != nil {
				fmt.Printf("         load failed: %v\n", err)
			} else {
				fmt.Printf("         %d records, version %s\n", cat.Len(), cat.Version())
			}

			fmt.Printf("Server:  port=%d bind=%s auth=%s\n",
				cfg.Server.Port, cfg.Server.Bind, cfg.Server.Auth.Mode)
			fmt.Printf("Logging: level=%s style=%s\n",
				cfg.Logging.Level, cfg.Logging.ConsoleStyle)

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}
}
