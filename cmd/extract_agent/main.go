// Package main provides the entry point for the resume extraction agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "extract_agent",
	Short: "Resume extraction agent",
	Long:  "Extracts structured candidate profiles from PDF and DOCX resumes using LLM extraction with a deterministic regex fallback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
