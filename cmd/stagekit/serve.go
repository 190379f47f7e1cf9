package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stagekit-dev/stagekit/internal/config"
	"github.com/stagekit-dev/stagekit/pkg/server"
	"github.com/stagekit-dev/stagekit/pkg/stagedef"
)

func serveCmd() *cobra.Command {
	var port int
	var definition string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a stage's view state over HTTP and WebSocket",
		Long: `Serve loads the project configuration (stagekit.json), builds the
configured stage definition, and serves its state: GET /state,
GET /structure, POST /transition, and a /live WebSocket pushing every
state change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if definition != "" {
				cfg.Definition = definition
			}
			if cfg.Definition == "" {
				return fmt.Errorf("no definition configured; set definition in %s or pass --definition", config.ConfigFileName)
			}

			store, err := stagedef.NewDiskStore(cfg.Store)
			if err != nil {
				return err
			}
			data, err := store.Load(cmd.Context(), cfg.Definition)
			if err != nil {
				return err
			}
			def, err := stagedef.Parse(data)
			if err != nil {
				return err
			}
			eng, _, err := buildEngine(def)
			if err != nil {
				return err
			}

			srv := server.New(eng, server.Config{
				Host:    cfg.Server.Host,
				Port:    cfg.Server.Port,
				Metrics: cfg.Server.Metrics,
			})

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override the configured port")
	cmd.Flags().StringVarP(&definition, "definition", "d", "", "Override the configured definition name")

	return cmd
}
