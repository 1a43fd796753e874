package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-extractor/internal/types"
)

// UpsertCandidate inserts or updates a candidate and returns its ID.
//
// Email is the identity key. Profiles without an email fall back to an
// exact-name match among the email-less rows, which keeps re-processing the
// same nameless resume from multiplying "Unknown" candidates.
func (db *DB) UpsertCandidate(ctx context.Context, profile *types.CandidateProfile, filename string, processingMs int64, confidence int) (uuid.UUID, error) {
	if profile == nil {
		return uuid.Nil, fmt.Errorf("candidate profile cannot be nil")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal candidate profile: %w", err)
	}

	if profile.Email != "" {
		var id uuid.UUID
		err := db.pool.QueryRow(ctx,
			`INSERT INTO candidates (name, email, title, confidence, source_file, processing_ms, profile)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (email) DO UPDATE
			 SET name = $1, title = $3, confidence = $4, source_file = $5,
			     processing_ms = $6, profile = $7, updated_at = NOW()
			 RETURNING id`,
			profile.Name, profile.Email, profile.Title, confidence, filename, processingMs, payload,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to upsert candidate: %w", err)
		}
		return id, nil
	}

	// No email: match by exact name among email-less rows.
	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`SELECT id FROM candidates WHERE email = '' AND name = $1 LIMIT 1`,
		profile.Name,
	).Scan(&id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("failed to look up candidate by name: %w", err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		err = db.pool.QueryRow(ctx,
			`INSERT INTO candidates (name, email, title, confidence, source_file, processing_ms, profile)
			 VALUES ($1, '', $2, $3, $4, $5, $6)
			 RETURNING id`,
			profile.Name, profile.Title, confidence, filename, processingMs, payload,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert candidate: %w", err)
		}
		return id, nil
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE candidates
		 SET title = $1, confidence = $2, source_file = $3, processing_ms = $4,
		     profile = $5, updated_at = NOW()
		 WHERE id = $6`,
		profile.Title, confidence, filename, processingMs, payload, id,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return id, nil
}

// GetCandidateByID retrieves a candidate, or nil when the ID is unknown.
func (db *DB) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	var (
		c       Candidate
		payload []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, title, confidence, source_file, processing_ms, profile, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Title, &c.Confidence, &c.SourceFile, &c.ProcessingMs, &payload, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if len(payload) > 0 {
		var profile types.CandidateProfile
		if err := json.Unmarshal(payload, &profile); err != nil {
			return nil, fmt.Errorf("failed to decode candidate profile: %w", err)
		}
		c.Profile = &profile
	}
	return &c, nil
}

// RecordActivity appends one entry to the candidate activity log.
func (db *DB) RecordActivity(ctx context.Context, candidateID uuid.UUID, activityType, detail string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_activity (candidate_id, activity_type, detail)
		 VALUES ($1, $2, $3)`,
		candidateID, activityType, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// SaveEnrichment stores third-party enrichment data for a candidate, one
// row per source, replacing any previous payload from the same source.
func (db *DB) SaveEnrichment(ctx context.Context, candidateID uuid.UUID, source string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal enrichment payload: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_enrichment (candidate_id, source, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (candidate_id, source) DO UPDATE SET payload = $3, updated_at = NOW()`,
		candidateID, source, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save enrichment: %w", err)
	}
	return nil
}
