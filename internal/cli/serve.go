package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/soyeahso/agentdex/internal/config"
	"github.com/soyeahso/agentdex/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog query server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			log.Info().Int("records", cat.Len()).Str("version", cat.Version()).Msg("catalog loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, cat, log)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override the configured server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override the configured bind mode (loopback, lan, auto, custom)")

	return cmd
}
