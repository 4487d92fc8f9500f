package cli

import (
	"fmt"

	"github.com/soyeahso/agentdex/internal/catalog"
	"github.com/soyeahso/agentdex/internal/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Parse a catalog table and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cat *catalog.Catalog
				err error
			)
			if len(args) == 1 {
				cat, err = catalog.LoadFile(args[0])
			} else {
				cfg, cfgErr := config.Load(paths.Config)
				if cfgErr != nil {
					return cfgErr
				}
				cat, err = loadCatalog(cfg)
			}
			if err != nil {
				return err
			}

			fmt.Printf("catalog OK: %d records (version %s)\n", cat.Len(), cat.Version())
			return nil
		},
	}
}
