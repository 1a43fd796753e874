// Package diagnostics provides best-effort debug sinks for the extraction
// pipeline. Sinks exist to support offline diagnosis; their failures are
// logged by callers and never convert a successful extraction into a
// reported failure.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-extractor/internal/types"
)

// PreviewLimit bounds the text preview stored in the extraction log.
const PreviewLimit = 500

// Sink receives diagnostic artifacts from the pipeline. Implementations
// must be safe for concurrent use: batch processing may append from
// multiple goroutines.
type Sink interface {
	// AppendExtractionLog records one extraction event.
	AppendExtractionLog(filename string, charCount, hyperlinkCount int, preview string) error
	// WriteResultDump stores the full extraction result as JSON.
	WriteResultDump(result *types.ExtractionResult) error
	// WriteFailedResponse stores a raw model response that failed to parse.
	WriteFailedResponse(filename, rawResponse string, parseErr error) error
}

// NopSink discards everything. Used when no debug directory is configured.
type NopSink struct{}

// AppendExtractionLog implements Sink.
func (NopSink) AppendExtractionLog(string, int, int, string) error { return nil }

// WriteResultDump implements Sink.
func (NopSink) WriteResultDump(*types.ExtractionResult) error { return nil }

// WriteFailedResponse implements Sink.
func (NopSink) WriteFailedResponse(string, string, error) error { return nil }

// FileSink writes diagnostics under a base directory. Every write opens,
// appends and closes; no file handle is held across calls, so concurrent
// appends from a parallel batch are safe at the OS level.
type FileSink struct {
	dir string
}

// NewFileSink creates the base directory if needed and returns a sink
// writing into it.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("diagnostics directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create diagnostics dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// AppendExtractionLog appends one line to extraction.log.
func (s *FileSink) AppendExtractionLog(filename string, charCount, hyperlinkCount int, preview string) error {
	if len(preview) > PreviewLimit {
		preview = preview[:PreviewLimit]
	}
	line := fmt.Sprintf("%s\t%s\tchars=%d\tlinks=%d\tpreview=%q\n",
		time.Now().UTC().Format(time.RFC3339), filename, charCount, hyperlinkCount, preview)

	f, err := os.OpenFile(filepath.Join(s.dir, "extraction.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open extraction log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append extraction log: %w", err)
	}
	return nil
}

// WriteResultDump writes the full result JSON next to the log, one file per
// processed document.
func (s *FileSink) WriteResultDump(result *types.ExtractionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result dump: %w", err)
	}
	name := fmt.Sprintf("result_%s_%d.json", sanitizeFilename(result.Filename), time.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write result dump: %w", err)
	}
	return nil
}

// WriteFailedResponse dumps a model response that failed to parse, together
// with the parse error, for offline diagnosis.
func (s *FileSink) WriteFailedResponse(filename, rawResponse string, parseErr error) error {
	dump := map[string]string{
		"filename":     filename,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"raw_response": rawResponse,
	}
	if parseErr != nil {
		dump["parse_error"] = parseErr.Error()
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failed response: %w", err)
	}
	name := fmt.Sprintf("failed_response_%s_%d.json", sanitizeFilename(filename), time.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write failed response: %w", err)
	}
	return nil
}

// sanitizeFilename keeps dump names filesystem-safe.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
