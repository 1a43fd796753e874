package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/enrichment"
)

var (
	enrichProfileURL string
	enrichUseBrowser bool
	enrichVerbose    bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [candidate-id]",
	Short: "Enrich a stored candidate from their LinkedIn profile",
	Long: `Fetches the candidate's LinkedIn profile page, parses it into a typed
enrichment record and stores it alongside the candidate. The profile URL
defaults to the linkedinUrl extracted from the resume; use --url to
override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&enrichProfileURL, "url", "", "Profile URL (defaults to the stored profile's linkedinUrl)")
	enrichCmd.Flags().BoolVar(&enrichUseBrowser, "browser", false, "Render the page in headless Chrome when the plain fetch looks empty")
	enrichCmd.Flags().BoolVarP(&enrichVerbose, "verbose", "v", false, "Print fetch details")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate ID %q: %w", args[0], err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	candidate, err := database.GetCandidateByID(ctx, candidateID)
	if err != nil {
		return err
	}
	if candidate == nil {
		return fmt.Errorf("candidate %s not found", candidateID)
	}

	profileURL := enrichProfileURL
	if profileURL == "" && candidate.Profile != nil {
		profileURL = candidate.Profile.LinkedInURL
	}
	if profileURL == "" {
		return fmt.Errorf("candidate %s has no LinkedIn URL; pass one with --url", candidateID)
	}

	fmt.Printf("Enriching %s from %s...\n", candidate.Name, profileURL)
	fetcher := &enrichment.Fetcher{UseBrowser: enrichUseBrowser, Verbose: enrichVerbose}
	result, err := fetcher.EnrichProfile(ctx, profileURL)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}
	if result.IsZero() {
		return fmt.Errorf("no profile data found at %s", profileURL)
	}

	if err := database.SaveEnrichment(ctx, candidateID, enrichment.Source, result); err != nil {
		return err
	}
	// Activity log is best-effort, same as the extraction path.
	_ = database.RecordActivity(ctx, candidateID, db.ActivityEnriched, profileURL)

	fmt.Printf("Saved enrichment for %s", candidate.Name)
	if result.Headline != "" {
		fmt.Printf(" (%s)", result.Headline)
	}
	fmt.Println()
	if result.OpenToWork {
		fmt.Println("Candidate is marked open to work")
	}
	return nil
}
