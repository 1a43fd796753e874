// Package parsing extracts a structured CandidateProfile from resume text
// using LLM extraction with strict anti-hallucination constraints.
package parsing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-extractor/internal/diagnostics"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/prompts"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/scoring"
	"github.com/jonathan/resume-extractor/internal/types"
)

// promptFile is the embedded template file holding the extraction prompts.
const promptFile = "extraction.json"

// ExtractProfile runs the LLM extraction path over the raw resume text and
// the document-discovered hyperlinks. The hyperlinks are embedded in the
// prompt as authoritative evidence for the three link fields.
//
// On a malformed response the raw model output is persisted to the sink
// before the error is surfaced; sink failures never mask the result.
func ExtractProfile(ctx context.Context, client llm.Client, text string, hyperlinks []types.Hyperlink, filename string, sink diagnostics.Sink) (*types.CandidateProfile, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < types.MinMeaningfulChars {
		return nil, &EmptyInputError{Length: len(trimmed)}
	}
	if client == nil {
		return nil, &ModelCallError{Message: "no model client configured"}
	}
	if sink == nil {
		sink = diagnostics.NopSink{}
	}

	system := prompts.MustGet(promptFile, "extract-profile-system")
	user := prompts.Format(prompts.MustGet(promptFile, "extract-profile-user"), map[string]string{
		"Hyperlinks": formatHyperlinks(hyperlinks),
		"ResumeText": text,
	})

	responseText, err := client.GenerateStructured(ctx, system, user, llm.DefaultMaxOutputTokens, llm.TierStandard)
	if err != nil {
		return nil, &ModelCallError{Message: "failed to generate extraction", Cause: err}
	}

	profile, err := parseResponse(responseText)
	if err != nil {
		// Best-effort dump for offline diagnosis; must never throw past us.
		_ = sink.WriteFailedResponse(filename, responseText, err)
		return nil, err
	}

	postProcess(profile, text)
	return profile, nil
}

// formatHyperlinks renders the discovered links as prompt evidence lines.
func formatHyperlinks(hyperlinks []types.Hyperlink) string {
	if len(hyperlinks) == 0 {
		return "(none discovered)\n"
	}
	var sb strings.Builder
	for _, link := range hyperlinks {
		if link.AnchorText != "" {
			sb.WriteString(fmt.Sprintf("- %q -> %s\n", link.AnchorText, link.URL))
		} else {
			sb.WriteString(fmt.Sprintf("- %s\n", link.URL))
		}
	}
	return sb.String()
}

// parseResponse strips markdown fences, checks the response against the
// candidate-profile JSON Schema, and unmarshals it.
func parseResponse(responseText string) (*types.CandidateProfile, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateCandidateProfile(cleaned); err != nil {
		return nil, &ResponseParseError{Message: "response does not match extraction schema", Cause: err}
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, &ResponseParseError{Message: "failed to parse JSON response", Cause: err}
	}
	return &profile, nil
}

// postProcess applies the invariants the model cannot be trusted with:
// source tagging, confidence recompute, bounded raw-text preview, and the
// non-empty-name sentinel.
func postProcess(profile *types.CandidateProfile, rawText string) {
	profile.EnsureDefaults()
	profile.Source = "resume"
	profile.Confidence = scoring.LLMScore(profile)
	profile.RawTextPreview = types.TruncateUTF8(rawText, types.RawTextPreviewLimit)
}
