// Package enrichment parses public LinkedIn profile pages into typed
// enrichment records for extracted candidates.
package enrichment

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Source is the enrichment source tag used when persisting.
const Source = "linkedin"

// nameSelectors are tried in order for the profile holder's name. Public
// profile markup has shifted over the years; older class names are kept as
// fallbacks.
var nameSelectors = []string{
	"h1.top-card-layout__title",
	"h1.text-heading-xlarge",
	"main h1",
	"h1",
}

var headlineSelectors = []string{
	"h2.top-card-layout__headline",
	".text-body-medium.break-words",
	".top-card-layout__second-subline + h2",
}

var locationSelectors = []string{
	".top-card__subline-item",
	".profile-info-subheader span.not-first-middot > span",
	".top-card-layout__first-subline span",
}

// ParseProfileHTML extracts the enrichment record from a profile page.
// Missing fields stay empty; only an unparseable document is an error.
func ParseProfileHTML(html, profileURL string) (*types.LinkedInEnrichment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile HTML: %w", err)
	}

	enrichment := &types.LinkedInEnrichment{
		ProfileURL: profileURL,
		Name:       firstText(doc, nameSelectors),
		Headline:   firstText(doc, headlineSelectors),
		Location:   firstText(doc, locationSelectors),
		Company:    currentCompany(doc),
		Skills:     skillList(doc),
		OpenToWork: openToWork(doc),
	}

	// og:title carries "Name - Headline | LinkedIn" on pages that render
	// nothing else server-side.
	if enrichment.Name == "" {
		enrichment.Name = nameFromOGTitle(doc)
	}
	return enrichment, nil
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			if text := strings.TrimSpace(selection.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// currentCompany takes the first experience entry's organization.
func currentCompany(doc *goquery.Document) string {
	selectors := []string{
		"section.experience li .experience-item__subtitle",
		".experience__list .profile-section-card__subtitle",
		"[data-section='experience'] li h4",
	}
	return firstText(doc, selectors)
}

func skillList(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var skills []string
	doc.Find("section.skills li, .skills__list li, [data-section='skills'] li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || len(text) > 60 {
			return
		}
		key := strings.ToLower(text)
		if seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, text)
	})
	return skills
}

// openToWork looks for the availability badge text anywhere in the top card.
func openToWork(doc *goquery.Document) bool {
	found := false
	doc.Find(".top-card-layout, .profile-badge, h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(s.Text())
		if strings.Contains(text, "open to work") || strings.Contains(text, "#opentowork") {
			found = true
			return false
		}
		return true
	})
	return found
}

func nameFromOGTitle(doc *goquery.Document) string {
	content, ok := doc.Find(`meta[property="og:title"]`).Attr("content")
	if !ok {
		return ""
	}
	// "Jane Roe - Engineer at Acme | LinkedIn"
	if idx := strings.Index(content, " - "); idx > 0 {
		content = content[:idx]
	} else if idx := strings.Index(content, " | "); idx > 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}
