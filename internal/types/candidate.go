// Package types provides type definitions for structured data used throughout the resume-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// UnknownName is the sentinel used when no candidate name could be extracted.
// Downstream upserts fall back to keying by name, so the field is never empty.
const UnknownName = "Unknown"

// RawTextPreviewLimit bounds the raw-text prefix embedded in a profile.
const RawTextPreviewLimit = 2000

// CandidateProfile is the canonical extraction output schema.
// JSON field names match the extraction schema sent to the model verbatim.
type CandidateProfile struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Title    string `json:"title,omitempty"`
	Summary  string `json:"summary,omitempty"`

	// Link fields are either empty or a URL that appeared in the source
	// hyperlinks or text. They are never constructed from a name or email.
	LinkedInURL  string `json:"linkedinUrl,omitempty"`
	GitHubURL    string `json:"githubUrl,omitempty"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`

	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Achievements   []Achievement   `json:"achievements"`
	Certifications []Certification `json:"certifications"`
	Skills         []string        `json:"skills"`
	Interests      []string        `json:"interests"`
	Languages      []string        `json:"languages"`

	// Source records which system produced the profile (always "resume").
	Source         string `json:"source,omitempty"`
	Confidence     int    `json:"confidence"`
	RawTextPreview string `json:"rawTextPreview,omitempty"`
}

// Experience represents a single work history entry.
// Duration keeps the raw string as it appeared in the document; StartDate and
// EndDate are best-effort normalizations in "YYYY-MM" form or the literal
// "Present", and stay empty when no date could be located.
type Experience struct {
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

// Project represents a candidate project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Achievement represents a single achievement or award.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Certification represents a professional certification.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
}

// validate is shared; validator instances are safe for concurrent use.
var validate = validator.New()

// Validate checks structural constraints before the profile is persisted.
func (p *CandidateProfile) Validate() error {
	return validate.Struct(p)
}

// EnsureDefaults fills required invariants: non-empty name sentinel and
// non-nil collection fields so consumers never see null JSON arrays.
func (p *CandidateProfile) EnsureDefaults() {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = UnknownName
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
}

// HasAnyLink reports whether at least one of the three link fields is set.
func (p *CandidateProfile) HasAnyLink() bool {
	return p.LinkedInURL != "" || p.GitHubURL != "" || p.PortfolioURL != ""
}
