package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/earlypension/internal/calculation"
	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/server"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons over HTTP",
		Long: `Serve POST /compare, POST /explain?age=N, GET /healthz and GET /metrics.

Settings come from flags, EARLYPENSION_* environment variables (EARLYPENSION_ADDR,
EARLYPENSION_READ_TIMEOUT, ...) and an optional YAML file, in that order of precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := server.NewViper()
			for key, flag := range map[string]string{
				"addr":                  "addr",
				"read_timeout":          "read-timeout",
				"write_timeout":         "write-timeout",
				"max_request_body_size": "max-body-size",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			settings, err := server.LoadSettings(v, configPath)
			if err != nil {
				return err
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			sugar := logger.Sugar()

			calcEngine := calculation.NewCalculationEngine()
			calcEngine.SetLogger(sugar)

			srv := server.New(*settings, compare.NewCompareEngine(calcEngine), sugar)
			srv.Version = version

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				sugar.Infof("shutting down")
				if err := srv.Shutdown(); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
		},
	}

	d := server.DefaultSettings()
	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML file with server settings")
	cmd.Flags().String("addr", d.Addr, "Listen address")
	cmd.Flags().Duration("read-timeout", d.ReadTimeout, "Maximum duration for reading a request")
	cmd.Flags().Duration("write-timeout", d.WriteTimeout, "Maximum duration for writing a response")
	cmd.Flags().Int("max-body-size", d.MaxRequestBodySize, "Maximum request body size in bytes")
	return cmd
}
