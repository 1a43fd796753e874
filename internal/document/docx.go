package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	docxDocumentPath = "word/document.xml"
	docxRelsPath     = "word/_rels/document.xml.rels"
)

// extractDOCX reads the text runs of word/document.xml and recovers
// hyperlinks by joining w:hyperlink elements with the relationship targets
// in document.xml.rels, the format's native link mechanism.
//
// Hyperlink recovery is best-effort: a missing or malformed rels part
// degrades to an empty link list. Text extraction is required.
func extractDOCX(data []byte, filename string) (*types.RawExtraction, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Filename: filename, Cause: err}
	}

	docXML, err := readZipEntry(zr, docxDocumentPath)
	if err != nil {
		return nil, &ParseError{Filename: filename, Cause: fmt.Errorf("%s: %w", docxDocumentPath, err)}
	}

	rels := map[string]string{}
	if relsXML, relErr := readZipEntry(zr, docxRelsPath); relErr == nil {
		rels = parseRelationships(relsXML)
	}

	text, links, err := walkDocumentXML(docXML, rels)
	if err != nil {
		return nil, &ParseError{Filename: filename, Cause: err}
	}

	return &types.RawExtraction{Text: normalizeWhitespace(text), Hyperlinks: links}, nil
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found", name)
}

// relationship mirrors the entries of document.xml.rels.
type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	Relationships []relationship `xml:"Relationship"`
}

// parseRelationships maps relationship IDs to external hyperlink targets.
// Non-hyperlink relationships (images, styles, themes) are ignored.
func parseRelationships(data []byte) map[string]string {
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return map[string]string{}
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		if strings.HasSuffix(rel.Type, "/hyperlink") && rel.Target != "" {
			targets[rel.ID] = rel.Target
		}
	}
	return targets
}

// walkDocumentXML streams through document.xml collecting text runs and
// hyperlink anchors. Paragraph ends become newlines, tabs and breaks are
// preserved, and every w:hyperlink with a resolvable relationship ID emits
// one Hyperlink in document order.
func walkDocumentXML(data []byte, rels map[string]string) (string, []types.Hyperlink, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		text       strings.Builder
		links      []types.Hyperlink
		anchor     strings.Builder
		currentURL string
		inLink     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("malformed document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "hyperlink":
				if url, ok := rels[attrValue(el, "id")]; ok {
					inLink = true
					currentURL = url
					anchor.Reset()
				}
			case "tab":
				text.WriteString("\t")
			case "br":
				text.WriteString("\n")
			case "t":
				var run string
				if err := decoder.DecodeElement(&run, &el); err != nil {
					continue
				}
				text.WriteString(run)
				if inLink {
					anchor.WriteString(run)
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "hyperlink":
				if inLink {
					links = append(links, types.Hyperlink{
						AnchorText: strings.TrimSpace(anchor.String()),
						URL:        currentURL,
					})
					inLink = false
					currentURL = ""
				}
			case "p":
				text.WriteString("\n")
			}
		}
	}

	return text.String(), links, nil
}

func attrValue(el xml.StartElement, local string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
