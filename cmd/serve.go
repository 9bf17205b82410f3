package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriBug/internal/ai"
	"github.com/Rorical/RoriBug/internal/config"
	"github.com/Rorical/RoriBug/internal/report"
	"github.com/Rorical/RoriBug/internal/server"
)

var (
	serveAddr     string
	serveGraphDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the report generation backend",
	Long: `Serve POST /generateReport. The application's transition graph is read
from the graph directory and sent to the model together with the bug
description. OPENAI_API_KEY and OPENAI_MODEL (also read from .env) override
the active profile.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		cfg := loadConfig()
		cfg.OverrideProfile(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
		if !cfg.IsValid() {
			log.Fatalf("No API key: set OPENAI_API_KEY or configure profile '%s'", cfg.ActiveProfile)
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		graphDir := cfg.Server.GraphDir
		if serveGraphDir != "" {
			graphDir = serveGraphDir
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: newBackend(cfg, graphDir),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("listening on %s (graphs in %s, model %s)", addr, graphDir, cfg.GetModel())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("server error: %v", err)
			}
		}()

		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	},
}

func newBackend(cfg *config.Config, graphDir string) http.Handler {
	aiClient := ai.NewOpenAIClient(ai.Options{
		APIKey:              cfg.GetAPIKey(),
		BaseURL:             cfg.GetBaseURL(),
		Model:               cfg.GetModel(),
		MaxCompletionTokens: cfg.Server.MaxCompletionTokens,
	})
	generator := report.NewGenerator(graphDir, aiClient)
	return server.NewRouter(server.NewHandler(generator), server.Options{
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
	})
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveGraphDir, "graph-dir", "", "graph data directory (overrides server.graph_dir)")

	rootCmd.AddCommand(serveCmd)
}
