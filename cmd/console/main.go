package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"voicehub/internal/channel"
	"voicehub/internal/config"
	"voicehub/internal/logging"
	"voicehub/internal/ui"
)

var (
	configPath string
	serverURL  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "voicehub-console",
	Short: "Interactive console for the voice assistant",
	Long: `voicehub-console connects to a voicehub server and provides a terminal
interface: type commands, trigger shortcuts and switch languages while
the assistant's responses stream into the conversation log.`,
	RunE: runConsole,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "", "Server WebSocket URL (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Console.ServerURL = serverURL
	}

	// The terminal owns stdout, so logs always go to a file here.
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "voicehub-console.log"
	}
	logger, err := logging.New(logFile, verbose || cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ch := channel.NewWebSocket(cfg.Console.ServerURL, logger)
	if err := ch.Connect(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Console.ServerURL, err)
	}
	defer ch.Disconnect()

	model := ui.New(ch, ch.Events(), cfg.Console, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console exited with error: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
