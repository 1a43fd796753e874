package types

import "unicode/utf8"

// Hyperlink is a (anchor text, URL) pair discovered through a document's
// native link mechanism (PDF link annotations, DOCX hyperlink relationships).
// Hyperlinks are never synthesized from plain text at the extraction stage;
// that distinction is what lets the LLM prompt treat them as ground truth.
type Hyperlink struct {
	AnchorText string `json:"anchor_text"`
	URL        string `json:"url"`
}

// RawExtraction is the output of document text extraction: the full text
// layer plus embedded hyperlinks in document order. Duplicates are kept.
// Instances are immutable once produced.
type RawExtraction struct {
	Text       string      `json:"text"`
	Hyperlinks []Hyperlink `json:"hyperlinks"`
}

// Empty reports whether the text layer yielded no meaningful content
// (the image-only/scanned PDF signal — a valid zero-confidence outcome).
func (r *RawExtraction) Empty() bool {
	return meaningfulChars(r.Text) < MinMeaningfulChars
}

// MinMeaningfulChars is the threshold below which extracted text is treated
// as empty and the model collaborator is never invoked.
const MinMeaningfulChars = 10

// TruncateUTF8 shortens s to at most limit bytes, backing off to the
// nearest rune boundary so the cut never produces an invalid UTF-8 tail.
func TruncateUTF8(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func meaningfulChars(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			n++
		}
	}
	return n
}

// ExtractionResult is the terminal record for one processed document.
// It is created per parse call and never mutated after construction.
type ExtractionResult struct {
	Filename         string            `json:"filename"`
	RawText          string            `json:"raw_text"`
	Profile          *CandidateProfile `json:"profile"`
	Confidence       int               `json:"confidence"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
}
