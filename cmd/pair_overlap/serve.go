package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/pair-overlap/internal/config"
	"github.com/jonathan/pair-overlap/internal/logging"
	"github.com/jonathan/pair-overlap/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload API server",
	Long: `Start an HTTP server accepting assignment files on POST /api/upload.

Settings come from the environment (PORT, LOG_LEVEL, LOG_FORMAT, MAX_UPLOAD_BYTES, UPLOAD_DIR,
CORS_ALLOWED_ORIGINS, REFERENCE_DATE, RATE_LIMIT_*). A .env file in the working directory is loaded first.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("upload_dir", cfg.UploadDir),
		zap.Int64("max_upload_bytes", cfg.MaxUploadBytes),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
	)
	return srv.Start(ctx)
}
