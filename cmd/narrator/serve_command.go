package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"narrator/internal/api"
	"narrator/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload server",
		Long: `Run the HTTP upload server.

POST a transcript to /api/convert (raw body or multipart "file" field) and
receive the manuscript as text, JSON, or an .xlsx cue sheet. Only one server
may run per state directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if value := strings.TrimSpace(bind); value != "" {
				cfg.Server.Bind = value
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			svc, err := ctx.conversionService(false)
			if err != nil {
				return err
			}

			var reader api.HistoryReader
			if svc.HistoryEnabled() {
				store, err := ctx.historyStore()
				if err != nil {
					return err
				}
				reader = store
			}

			srv, err := server.New(server.Options{
				Config:     cfg,
				Conversion: svc,
				History:    api.NewHistoryService(reader),
				Logger:     logger,
				Version:    version,
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", srv.Addr())
			<-runCtx.Done()
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override server.bind (host:port)")
	return cmd
}

