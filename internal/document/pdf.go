package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-extractor/internal/types"
)

// extractPDF reads the text layer and link annotations of a PDF.
// Link recovery and text extraction are independent: a document with a
// broken annotation tree still yields its text, and vice versa.
func extractPDF(data []byte, filename string) (extraction *types.RawExtraction, err error) {
	// The underlying parser panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			extraction = nil
			err = &ParseError{Filename: filename, Cause: fmt.Errorf("pdf parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Filename: filename, Cause: err}
	}

	links := collectLinkAnnotations(reader)

	text := readPlainText(reader)
	raw := &types.RawExtraction{Text: normalizeWhitespace(text), Hyperlinks: links}
	if raw.Empty() {
		// Second attempt with per-page extraction before declaring the
		// text layer empty. Individual page failures are tolerated.
		if retry := readPagewiseText(reader); retry != "" {
			raw = &types.RawExtraction{Text: normalizeWhitespace(retry), Hyperlinks: links}
		}
	}
	return raw, nil
}

// readPlainText extracts the whole document's text layer in one pass.
func readPlainText(reader *pdf.Reader) string {
	rs, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return ""
	}
	return buf.String()
}

// readPagewiseText is the relaxed retry: it walks pages individually and
// skips any page whose content stream fails to decode.
func readPagewiseText(reader *pdf.Reader) string {
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// collectLinkAnnotations walks every page's Annots array and keeps only
// genuine URI link actions. Internal-destination links (GoTo actions and
// bare Dest entries) are navigation inside the document and are discarded.
func collectLinkAnnotations(reader *pdf.Reader) []types.Hyperlink {
	var links []types.Hyperlink
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		annots := page.V.Key("Annots")
		if annots.Kind() != pdf.Array {
			continue
		}
		for j := 0; j < annots.Len(); j++ {
			annot := annots.Index(j)
			if annot.Kind() != pdf.Dict || annot.Key("Subtype").Name() != "Link" {
				continue
			}
			action := annot.Key("A")
			if action.Kind() != pdf.Dict || action.Key("S").Name() != "URI" {
				continue
			}
			uri := annotURI(action.Key("URI"))
			if uri == "" {
				continue
			}
			// PDF link annotations carry no anchor text; the rectangle
			// geometry is not correlated back to the text layer.
			links = append(links, types.Hyperlink{URL: uri})
		}
	}
	return links
}

func annotURI(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.RawString())
}
