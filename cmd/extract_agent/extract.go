package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/diagnostics"
	"github.com/jonathan/resume-extractor/internal/fallback"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract candidate profiles from resume files",
	Long: `Processes one or more PDF/DOCX resumes: text and hyperlink extraction,
LLM structured extraction (regex fallback on model failure), confidence
scoring and optional PostgreSQL persistence.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var (
	extractConfigPath   string
	extractAPIKey       string
	extractDatabaseURL  string
	extractDebugDir     string
	extractVocabPath    string
	extractConcurrency  int
	extractFallbackOnly bool
	extractVerbose      bool
)

func init() {
	// Config file flag (processed first)
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	extractCmd.Flags().StringVar(&extractDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	extractCmd.Flags().StringVar(&extractDebugDir, "debug-dir", "", "Directory for diagnostic dumps (disabled when empty)")
	extractCmd.Flags().StringVar(&extractVocabPath, "vocabulary", "", "Override file for the fallback keyword tables")
	extractCmd.Flags().IntVar(&extractConcurrency, "concurrency", 1, "Documents processed in parallel")
	extractCmd.Flags().BoolVar(&extractFallbackOnly, "fallback-only", false, "Skip the model and use regex extraction only")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed extraction summaries")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if extractConfigPath != "" {
		loadedCfg, err := config.LoadConfig(extractConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if extractVerbose {
			fmt.Printf("Loaded config from: %s\n", extractConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = extractAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = extractDatabaseURL
	}
	if cmd.Flags().Changed("debug-dir") {
		cfg.DebugDir = extractDebugDir
	}
	if cmd.Flags().Changed("vocabulary") {
		cfg.VocabularyPath = extractVocabPath
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = extractConcurrency
	}
	if cmd.Flags().Changed("fallback-only") || extractFallbackOnly {
		cfg.FallbackOnly = extractFallbackOnly
	}
	if extractVerbose {
		cfg.Verbose = true
	}

	// Step 3: Fill remaining values from the environment
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	processor, cleanup, err := buildProcessor(ctx, &cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Step 4: Read the documents
	docs := make([]pipeline.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, pipeline.Document{Filename: path, Data: data})
	}

	// Step 5: Process the batch
	fmt.Printf("Processing %d document(s)...\n", len(docs))
	results, errs := processor.ProcessBatch(ctx, docs)

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		for _, result := range results {
			printer.PrintExtractionResult(result)
		}
	}
	printer.PrintBatchSummary(results, errs)

	if len(errs) == len(docs) {
		return fmt.Errorf("all %d document(s) failed", len(docs))
	}
	return nil
}

// buildProcessor assembles the pipeline from the merged configuration. The
// returned cleanup closes the model client and database pool.
func buildProcessor(ctx context.Context, cfg *config.Config) (*pipeline.Processor, func(), error) {
	var closers []func()
	cleanup := func() {
		for _, close := range closers {
			close()
		}
	}

	var client llm.Client
	if cfg.APIKey != "" && !cfg.FallbackOnly {
		var err error
		client, err = llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create model client: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
	} else if !cfg.FallbackOnly {
		fmt.Println("Warning: no API key configured, using regex extraction only")
	}

	var store pipeline.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to database: %v\n", err)
			fmt.Println("Continuing without persistence...")
		} else {
			closers = append(closers, database.Close)
			store = database
		}
	}

	var sink diagnostics.Sink = diagnostics.NopSink{}
	if cfg.DebugDir != "" {
		fileSink, err := diagnostics.NewFileSink(cfg.DebugDir)
		if err != nil {
			return nil, cleanup, err
		}
		sink = fileSink
	}

	vocab := fallback.DefaultVocabulary()
	if cfg.VocabularyPath != "" {
		loaded, err := fallback.LoadVocabulary(cfg.VocabularyPath)
		if err != nil {
			return nil, cleanup, err
		}
		vocab = loaded
	}

	processor := &pipeline.Processor{
		Client:       client,
		Store:        store,
		Sink:         sink,
		Fallback:     fallback.NewExtractor(vocab),
		FallbackOnly: cfg.FallbackOnly,
		Concurrency:  cfg.Concurrency,
	}
	if cfg.Verbose {
		processor.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Printf("[%s] %s\n", event.Category, event.Message)
		}
	}
	return processor, cleanup, nil
}
