package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriBug/internal/app"
	"github.com/Rorical/RoriBug/internal/config"
)

var (
	backendURL string
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "roribug",
	Short: "Terminal bug report assistant",
	Long: `RoriBug collects a bug description for a selected application and
shows the structured bug report produced by the report backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(loadConfig(), app.Options{}); err != nil {
			log.Fatal(err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "report endpoint URL (overrides backend_url)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write logs to debug.log in the config directory")

	rootCmd.AddCommand(profileCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	return cfg
}

// setupTUILogging keeps the standard logger off the terminal while the
// program owns it. The returned closer is never nil.
func setupTUILogging() io.Closer {
	if !debugLog {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}

	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("Failed to get config directory: %v", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "roribug")
	if err != nil {
		log.Fatalf("Failed to open debug log: %v", err)
	}
	return f
}

// startApplication is replaced in tests, which have no terminal.
var startApplication = (*app.Application).Start

// runTUI runs the chat screen until it quits. The standard logger writes to
// stderr again when it returns, so callers can report the error.
func runTUI(cfg *config.Config, opts app.Options) error {
	logs := setupTUILogging()
	defer func() {
		logs.Close()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}()

	application, err := app.NewApplication(cfg, opts)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Stop()

	if err := startApplication(application); err != nil {
		log.Printf("Application error: %v", err)
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}
