// Package scoring computes confidence scores for extraction results.
//
// The two rubrics are deliberately different and not interchangeable: the
// LLM rubric measures field-level completeness of an already-structured
// profile, while the regex rubric measures textual evidence of structure in
// the raw document.
package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// sectionKeywords are the structural cues the regex rubric rewards.
var sectionKeywords = []string{"experience", "education", "skills", "projects", "certifications"}

var digitRun = regexp.MustCompile(`\d[\d\s().-]{8,}\d`)

// LLMScore scores a structured profile by weighted field presence,
// normalized to 0..100.
func LLMScore(profile *types.CandidateProfile) int {
	if profile == nil {
		return 0
	}

	score := 0
	if profile.Name != "" && profile.Name != types.UnknownName {
		score += 15
	}
	if profile.Email != "" {
		score += 15
	}
	if profile.Phone != "" {
		score += 10
	}
	if profile.Title != "" {
		score += 10
	}
	if profile.Summary != "" {
		score += 10
	}
	if len(profile.Experience) > 0 {
		score += 10
	}
	if len(profile.Skills) > 0 {
		score += 10
	}
	if len(profile.Education) > 0 {
		score += 10
	}

	// Bonus signals, 10 points max combined. A verifiable link is the
	// strongest single signal and fills the whole block on its own, so a
	// fully-populated core plus any link reaches 100.
	bonus := 0
	if len(profile.Projects) > 0 {
		bonus += 3
	}
	if len(profile.Certifications) > 0 {
		bonus += 3
	}
	if len(profile.Achievements) > 0 {
		bonus += 2
	}
	if profile.HasAnyLink() {
		bonus += 10
	}
	if bonus > 10 {
		bonus = 10
	}

	score += bonus
	if score > 100 {
		score = 100
	}
	return score
}

// RegexScore scores raw text by evidence of resume structure, capped at 100.
func RegexScore(text string) int {
	textLower := strings.ToLower(text)

	score := 0
	for _, keyword := range sectionKeywords {
		if strings.Contains(textLower, keyword) {
			score += 15
		}
	}
	if strings.Contains(text, "@") {
		score += 10
	}
	if hasLongDigitRun(text) {
		score += 10
	}
	if strings.Contains(textLower, "linkedin") {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// hasLongDigitRun reports whether the text contains a run of 10 or more
// digits, allowing common phone separators inside the run.
func hasLongDigitRun(text string) bool {
	for _, match := range digitRun.FindAllString(text, -1) {
		digits := 0
		for _, r := range match {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 10 {
			return true
		}
	}
	return false
}
