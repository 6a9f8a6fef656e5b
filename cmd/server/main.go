package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voicehub/internal/assistant"
	"voicehub/internal/config"
	"voicehub/internal/logging"
	"voicehub/internal/server"
)

var (
	configPath string
	listenAddr string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "voicehub-server",
	Short: "Voice assistant event server",
	Long: `voicehub-server hosts the bilingual voice assistant. Consoles connect
over WebSocket, send typed commands and receive status, log and speech
events back.`,
	RunE: runServer,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}

	logger, err := logging.New(cfg.Logging.File, verbose || cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a := assistant.New(cfg.Assistant.WakeWords, cfg.Assistant.DefaultLanguage)
	srv := server.New(cfg.Server.Listen, a, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("listen", cfg.Server.Listen))
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		logger.Info("shutting down", zap.Stringer("signal", sig))
		srv.Stop()
	}

	logger.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
