// Package pipeline orchestrates resume extraction: document parsing, the
// LLM path with its regex fallback, scoring, persistence and diagnostics.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-extractor/internal/diagnostics"
	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/fallback"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/parsing"
	"github.com/jonathan/resume-extractor/internal/types"
)

// ProgressEvent represents a progress update during batch processing.
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when processing progress occurs.
type ProgressCallback func(event ProgressEvent)

// Store is the persistence surface the pipeline needs. *db.CandidateStore
// satisfies it; a nil Store disables persistence entirely.
type Store interface {
	UpsertCandidate(ctx context.Context, profile *types.CandidateProfile, filename string, processingMs int64, confidence int) (uuid.UUID, error)
	RecordActivity(ctx context.Context, candidateID uuid.UUID, activityType, detail string) error
}

// Document is one batch input: raw bytes plus the filename whose extension
// selects the parser.
type Document struct {
	Filename string
	Data     []byte
}

// Processor runs the extraction pipeline over documents. All collaborators
// are injected; Client and Store may be nil, in which case the regex
// fallback handles extraction and persistence is skipped.
type Processor struct {
	Client llm.Client
	Store  Store
	Sink   diagnostics.Sink
	// Fallback must be non-nil; it is the path of last resort and the
	// reason ProcessDocument cannot fail on model trouble.
	Fallback *fallback.Extractor

	// FallbackOnly skips the model even when a client is configured.
	FallbackOnly bool
	// Concurrency bounds batch fan-out. Zero or negative means sequential.
	Concurrency int

	OnProgress ProgressCallback
}

// NewProcessor returns a processor with the default fallback extractor and
// a no-op diagnostics sink.
func NewProcessor(client llm.Client, store Store) *Processor {
	return &Processor{
		Client:   client,
		Store:    store,
		Sink:     diagnostics.NopSink{},
		Fallback: fallback.NewExtractor(nil),
	}
}

func (p *Processor) sink() diagnostics.Sink {
	if p.Sink == nil {
		return diagnostics.NopSink{}
	}
	return p.Sink
}

func (p *Processor) emitProgress(step, category, message string, content any) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Step: step, Category: category, Message: message, Content: content})
	}
}

// ProcessDocument runs the full pipeline for one document.
//
// Unreadable or unsupported documents are the only extraction failures:
// model errors and malformed responses downgrade to the regex fallback, and
// an empty text layer (image-only PDF) produces a valid zero-confidence
// result without a model call. A *PersistenceError is returned alongside a
// fully-computed result when only the database write failed.
func (p *Processor) ProcessDocument(ctx context.Context, data []byte, filename string) (*types.ExtractionResult, error) {
	start := time.Now()

	raw, err := document.Extract(data, filename)
	if err != nil {
		return nil, fmt.Errorf("extraction failed for %s: %w", filename, err)
	}
	_ = p.sink().AppendExtractionLog(filename, len(raw.Text), len(raw.Hyperlinks), raw.Text)

	profile := p.extractProfile(ctx, raw, filename)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &types.ExtractionResult{
		Filename:         filename,
		RawText:          raw.Text,
		Profile:          profile,
		Confidence:       profile.Confidence,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	_ = p.sink().WriteResultDump(result)

	if p.Store != nil {
		if err := p.persist(ctx, result); err != nil {
			return result, &PersistenceError{Filename: filename, Cause: err}
		}
	}
	return result, nil
}

// extractProfile picks the extraction path for the document. It always
// returns a profile; the fallback extractor is total.
func (p *Processor) extractProfile(ctx context.Context, raw *types.RawExtraction, filename string) *types.CandidateProfile {
	if raw.Empty() {
		// Scanned or image-only document. A valid outcome, not an error,
		// and never worth a model call.
		p.emitProgress("extract", "document", fmt.Sprintf("%s: empty text layer, skipping model", filename), nil)
		profile := p.Fallback.Extract(raw.Text, raw.Hyperlinks)
		profile.Confidence = 0
		return profile
	}

	if p.FallbackOnly || p.Client == nil {
		p.emitProgress("extract", "fallback", fmt.Sprintf("%s: using regex extraction", filename), nil)
		return p.Fallback.Extract(raw.Text, raw.Hyperlinks)
	}

	profile, err := parsing.ExtractProfile(ctx, p.Client, raw.Text, raw.Hyperlinks, filename, p.sink())
	if err != nil {
		// Model unavailability and malformed responses both downgrade to
		// the fallback; the failed response was already dumped by parsing.
		p.emitProgress("extract", "fallback", fmt.Sprintf("%s: model path failed (%v), using regex extraction", filename, err), nil)
		return p.Fallback.Extract(raw.Text, raw.Hyperlinks)
	}
	p.emitProgress("extract", "model", fmt.Sprintf("%s: model extraction complete", filename), nil)
	return profile
}

// persist upserts the candidate and records the activity entry. Activity
// logging is a side channel and never fails the persist.
func (p *Processor) persist(ctx context.Context, result *types.ExtractionResult) error {
	if err := result.Profile.Validate(); err != nil {
		return fmt.Errorf("profile failed validation: %w", err)
	}
	candidateID, err := p.Store.UpsertCandidate(ctx, result.Profile, result.Filename, result.ProcessingTimeMs, result.Confidence)
	if err != nil {
		return err
	}
	_ = p.Store.RecordActivity(ctx, candidateID, "resume_extracted",
		fmt.Sprintf("extracted from %s with confidence %d", result.Filename, result.Confidence))
	return nil
}

// ProcessBatch runs ProcessDocument over every input with bounded fan-out.
//
// Results preserve input order; failed items leave a nil slot and
// contribute a *DocumentError instead. One bad document never aborts the
// batch. A result accompanied by a *PersistenceError keeps its slot and the
// error is collected.
func (p *Processor) ProcessBatch(ctx context.Context, docs []Document) ([]*types.ExtractionResult, []error) {
	results := make([]*types.ExtractionResult, len(docs))

	var mu sync.Mutex
	var errs []error

	limit := p.Concurrency
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, doc := range docs {
		g.Go(func() error {
			p.emitProgress("batch", "document", fmt.Sprintf("Processing %s (%d/%d)", doc.Filename, i+1, len(docs)), nil)

			result, err := p.ProcessDocument(gctx, doc.Data, doc.Filename)
			results[i] = result
			if err != nil {
				mu.Lock()
				errs = append(errs, &DocumentError{Filename: doc.Filename, Err: err})
				mu.Unlock()
			}
			// Errors are collected, not returned: returning one would
			// cancel gctx and abort the remaining documents.
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}
