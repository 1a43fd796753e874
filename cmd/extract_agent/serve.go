package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/server"
)

var (
	serveAddr         string
	serveDebugDir     string
	serveFallbackOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts resume uploads and serves extracted candidates.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&serveDebugDir, "debug-dir", "", "Directory for diagnostic dumps (disabled when empty)")
	serveCmd.Flags().BoolVar(&serveFallbackOnly, "fallback-only", false, "Skip the model and use regex extraction only")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// The API persists candidates; a database is required here, unlike the
	// extract command.
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg := server.Config{
		Addr:         serveAddr,
		DatabaseURL:  databaseURL,
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		FallbackOnly: serveFallbackOnly,
		DebugDir:     serveDebugDir,
	}

	srv, err := server.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
