package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Candidate is a persisted candidate row. The flat columns mirror the
// fields queried directly; the full structured profile lives in a jsonb
// column alongside them.
type Candidate struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Title        string                  `json:"title"`
	Confidence   int                     `json:"confidence"`
	SourceFile   string                  `json:"source_file"`
	ProcessingMs int64                   `json:"processing_ms"`
	Profile      *types.CandidateProfile `json:"profile"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// Activity type constants for the candidate activity log
const (
	ActivityResumeExtracted = "resume_extracted"
	ActivityEnriched        = "enriched"
)
