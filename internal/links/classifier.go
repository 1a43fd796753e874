// Package links classifies document-discovered hyperlinks into semantic
// roles (LinkedIn, GitHub, portfolio) and normalizes partial URLs.
//
// These lookups run before any text-pattern fallback: a link discovered
// through the document's native mechanism always wins over a regex guess.
package links

import (
	"net/url"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	linkedinHost = "linkedin.com"
	githubHost   = "github.com"
)

// portfolioAnchorWords are anchor-text cues that a generic link is the
// candidate's own site.
var portfolioAnchorWords = []string{"portfolio", "website", "personal", "blog", "site"}

// FindLinkedIn returns the first LinkedIn profile URL among the discovered
// hyperlinks, scheme-normalized, or "" when none match.
func FindLinkedIn(hyperlinks []types.Hyperlink) string {
	return findHost(hyperlinks, linkedinHost)
}

// FindGitHub returns the first GitHub URL among the discovered hyperlinks,
// scheme-normalized, or "" when none match.
func FindGitHub(hyperlinks []types.Hyperlink) string {
	return findHost(hyperlinks, githubHost)
}

// findHost returns the first link whose parsed host is the domain or a
// subdomain of it. Anchor text alone never qualifies a link: "my linkedin"
// pointing at a shortener must not be trusted as a profile URL.
func findHost(hyperlinks []types.Hyperlink, domain string) string {
	for _, link := range hyperlinks {
		if urlHasHost(link.URL, domain) {
			return Normalize(link.URL)
		}
	}
	return ""
}

// urlHasHost matches against the URL's host component only. A substring
// scan over the whole URL would let a path like /linkedin.com masquerade
// as a profile link.
func urlHasHost(raw, domain string) bool {
	parsed, err := url.Parse(Normalize(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(strings.TrimSuffix(parsed.Hostname(), "."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// FindPortfolio returns the first hyperlink that is neither a LinkedIn nor
// GitHub match and either resolves to a TLD-bearing host or carries a
// portfolio-flavored anchor text. Returns "" when none match.
func FindPortfolio(hyperlinks []types.Hyperlink) string {
	for _, link := range hyperlinks {
		urlLower := strings.ToLower(link.URL)
		if urlLower == "" ||
			strings.HasPrefix(urlLower, "mailto:") ||
			urlHasHost(link.URL, linkedinHost) ||
			urlHasHost(link.URL, githubHost) {
			continue
		}
		if hasRecognizedTLD(link.URL) || hasPortfolioAnchor(link.AnchorText) {
			return Normalize(link.URL)
		}
	}
	return ""
}

func hasPortfolioAnchor(anchor string) bool {
	anchorLower := strings.ToLower(anchor)
	for _, word := range portfolioAnchorWords {
		if strings.Contains(anchorLower, word) {
			return true
		}
	}
	return false
}

// hasRecognizedTLD reports whether the URL parses to a host whose final
// dot-separated label looks like a top-level domain (2+ letters).
func hasRecognizedTLD(raw string) bool {
	parsed, err := url.Parse(Normalize(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.TrimSuffix(parsed.Hostname(), ".")
	idx := strings.LastIndex(host, ".")
	if idx < 1 || idx == len(host)-1 {
		return false
	}
	tld := host[idx+1:]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// Normalize prefixes https:// when the URL lacks a scheme. URLs that
// already carry a scheme are returned untouched.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "://") || strings.HasPrefix(strings.ToLower(trimmed), "mailto:") {
		return trimmed
	}
	return "https://" + trimmed
}
