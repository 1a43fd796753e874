// Package document extracts raw text and embedded hyperlinks from resume
// documents. PDF and DOCX are supported; hyperlinks are recovered only
// through each format's native link mechanism, never inferred from text.
package document

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Extract parses the document bytes selected by the filename's extension
// and returns the raw text layer plus discovered hyperlinks.
//
// An image-only PDF yields an extraction whose Empty() method reports true;
// that is a valid outcome, not an error. No OCR is attempted.
func Extract(data []byte, filename string) (*types.RawExtraction, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractPDF(data, filename)
	case ".docx":
		return extractDOCX(data, filename)
	case ".doc":
		return nil, &LegacyFormatError{Filename: filename}
	default:
		return nil, &UnsupportedFormatError{Filename: filename, Ext: ext}
	}
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// normalizeWhitespace collapses space runs and excessive blank lines while
// preserving line structure, which the fallback extractor depends on.
func normalizeWhitespace(s string) string {
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
