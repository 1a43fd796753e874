// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractionResult outputs a human-readable summary of one processed
// document.
func (p *Printer) PrintExtractionResult(result *types.ExtractionResult) {
	if result == nil || result.Profile == nil {
		return
	}
	profile := result.Profile

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.Name))
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", profile.Email))
	}
	if profile.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", profile.Phone))
	}
	if profile.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:      %s\n", profile.Title))
	}
	if profile.LinkedInURL != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn:   %s\n", profile.LinkedInURL))
	}
	if profile.GitHubURL != "" {
		sb.WriteString(fmt.Sprintf("GitHub:     %s\n", profile.GitHubURL))
	}
	if profile.PortfolioURL != "" {
		sb.WriteString(fmt.Sprintf("Portfolio:  %s\n", profile.PortfolioURL))
	}
	sb.WriteString(fmt.Sprintf("Confidence: %d/100\n", result.Confidence))
	sb.WriteString(fmt.Sprintf("Took:       %dms\n", result.ProcessingTimeMs))

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	if len(profile.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.JobTitle))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			if exp.Duration != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Duration))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("EXTRACTED: %s", result.Filename), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the final tally of a batch run.
func (p *Printer) PrintBatchSummary(results []*types.ExtractionResult, errs []error) {
	succeeded := 0
	confidenceSum := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		succeeded++
		confidenceSum += result.Confidence
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed:  %d\n", succeeded))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", len(errs)))
	if succeeded > 0 {
		sb.WriteString(fmt.Sprintf("Avg score:  %d/100\n", confidenceSum/succeeded))
	}
	for _, err := range errs {
		sb.WriteString(fmt.Sprintf("  ✗ %v\n", err))
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
