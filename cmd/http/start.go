package http

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindmanager/mindmanager_backend/config"
	apihttp "github.com/mindmanager/mindmanager_backend/internal/api/http"
	"github.com/mindmanager/mindmanager_backend/pkg/logs"
	"github.com/mindmanager/mindmanager_backend/pkg/password"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return err
			}

			// Set up structured logger before fx starts so all logs use it.
			logger := logs.New(cfg)
			slog.SetDefault(logger)

			password.Configure(cfg.Password)

			apihttp.Start(cfg, logger, shutdownTimeout)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
