// Package fallback provides deterministic, pattern-based extraction of the
// candidate schema for when the LLM path is unavailable or fails.
//
// The extractor is total: absence of a match yields absent or empty-list
// field values, never an error. It trades recall for a zero-failure
// guarantee; the LLM path remains the primary, higher-fidelity extractor.
package fallback

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/scoring"
	"github.com/jonathan/resume-extractor/internal/types"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Phone patterns are tried in order; first match wins. The NANP pattern
	// demands a separator after the area code so that a bare 10-digit run
	// does not shadow the region patterns that follow.
	phoneNANP    = regexp.MustCompile(`(?:\+?1[\s.\-]?)?\(?\d{3}\)?[\s.\-]\d{3}[\s.\-]?\d{4}\b`)
	phoneIndia   = regexp.MustCompile(`(?:\+?91[\s\-]?)?[6-9]\d{9}\b`)
	phoneGeneric = regexp.MustCompile(`\+?\d[\d\s().\-]{8,}\d`)

	linkedinText  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_\-%.]+`)
	linkedinLabel = regexp.MustCompile(`(?im)^linkedin\s*[:|\-]\s*([A-Za-z0-9_\-.]{2,60})\s*$`)
	githubText    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_\-.]+`)
	githubLabel   = regexp.MustCompile(`(?im)^github\s*[:|\-]\s*([A-Za-z0-9_\-.]{2,60})\s*$`)

	portfolioLabel = regexp.MustCompile(`(?im)^(?:portfolio|website)\s*[:|\-]\s*(\S{4,120})\s*$`)
	bareURL        = regexp.MustCompile(`(?i)\bhttps?://[^\s)>\]]{4,160}`)

	// Name patterns, tried in order. A candidate is accepted only if it
	// independently re-validates against nameStrict.
	nameLeading = regexp.MustCompile(`^([A-Z][A-Za-z.'\-]+(?:\s+[A-Z][A-Za-z.'\-]+){1,3})$`)
	nameLabel   = regexp.MustCompile(`(?im)^name\s*[:\-]\s*(.{2,60})\s*$`)
	nameStrict  = regexp.MustCompile(`^[A-Z][A-Za-z.'\-]+(?:\s+[A-Z][A-Za-z.'\-]+){1,3}$`)

	locationLabel = regexp.MustCompile(`(?im)^(?:location|address|based in)\s*[:\-]?\s*([A-Za-z][A-Za-z ,.\-]{1,59})\s*$`)
	skillsLine    = regexp.MustCompile(`(?im)^skills?\s*[:\-]\s*(.+)$`)
	summaryLabel  = regexp.MustCompile(`(?im)^(?:summary|objective|profile|about(?:\s+me)?)\s*[:\-]?\s*$`)

	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// maxSectionEntries bounds every record list so a pathological document
// cannot balloon the profile.
const maxSectionEntries = 10

// skillMatcher pairs a canonical vocabulary entry with its match strategy.
// Plain alphanumeric skills match as whole words; entries carrying symbols
// (C++, CI/CD, .NET) fall back to substring matching because \b boundaries
// do not exist next to punctuation.
type skillMatcher struct {
	canonical string
	re        *regexp.Regexp
	substring string
}

// Extractor is the regex fallback extractor. It is stateless apart from the
// precompiled vocabulary and safe for concurrent use.
type Extractor struct {
	vocab    *Vocabulary
	skills   []skillMatcher
	titleRe  *regexp.Regexp
	degreeRe *regexp.Regexp
}

// NewExtractor precompiles the vocabulary tables into matchers.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	e := &Extractor{vocab: vocab}
	plainWord := regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	for _, skill := range vocab.Skills {
		if plainWord.MatchString(skill) {
			e.skills = append(e.skills, skillMatcher{
				canonical: skill,
				re:        regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`),
			})
		} else {
			e.skills = append(e.skills, skillMatcher{
				canonical: skill,
				substring: strings.ToLower(skill),
			})
		}
	}
	e.titleRe = keywordUnion(vocab.TitleKeywords)
	e.degreeRe = keywordUnion(vocab.DegreeKeywords)
	return e
}

func keywordUnion(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return regexp.MustCompile(`\A\z`) // matches nothing but empty
	}
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(kw)))
	}
	// Leading boundary only: "project" must still hit "Projects", but "ms"
	// must not hit the tail of "systems".
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)`)
}

// Extract reconstructs the candidate schema from raw text and the
// document-discovered hyperlinks. Pure: identical input yields an identical
// profile.
func (e *Extractor) Extract(text string, hyperlinks []types.Hyperlink) *types.CandidateProfile {
	lines := splitLines(text)

	profile := &types.CandidateProfile{
		Name:     e.extractName(lines),
		Email:    emailRe.FindString(text),
		Phone:    extractPhone(text),
		Location: firstSubmatch(locationLabel, text),
		Title:    e.extractTitle(lines),
		Summary:  extractSummary(lines),
	}

	// Discovered hyperlinks always win over text-pattern guesses.
	profile.LinkedInURL = firstNonEmpty(links.FindLinkedIn(hyperlinks), linkedinFromText(text))
	profile.GitHubURL = firstNonEmpty(links.FindGitHub(hyperlinks), githubFromText(text))
	profile.PortfolioURL = firstNonEmpty(links.FindPortfolio(hyperlinks), portfolioFromText(text))

	profile.Skills = e.extractSkills(text)
	profile.Experience = e.extractExperience(lines)
	profile.Education = e.extractEducation(lines)
	profile.Projects = e.extractProjects(lines)
	profile.Achievements = e.extractAchievements(lines)
	profile.Certifications = e.extractCertifications(lines)

	profile.EnsureDefaults()
	profile.Source = "resume"
	profile.Confidence = scoring.RegexScore(text)
	profile.RawTextPreview = types.TruncateUTF8(text, types.RawTextPreviewLimit)
	return profile
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstSubmatch(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractName tries three patterns in order and accepts a candidate only
// when it re-validates against the strict capitalized-sequence check.
// Unmatched names resolve to the "Unknown" sentinel, never to empty:
// downstream upserts key by name when no email is present.
func (e *Extractor) extractName(lines []string) string {
	first := firstNonEmptyLine(lines)

	if m := nameLeading.FindStringSubmatch(first); m != nil && validName(m[1]) {
		return m[1]
	}
	if m := nameLabel.FindStringSubmatch(strings.Join(lines, "\n")); m != nil {
		if candidate := strings.TrimSpace(m[1]); validName(candidate) {
			return candidate
		}
	}
	// Looser leading-line heuristic: first four words of the first line.
	words := strings.Fields(first)
	if len(words) > 4 {
		words = words[:4]
	}
	if candidate := strings.Join(words, " "); validName(candidate) {
		return candidate
	}
	return types.UnknownName
}

// validName applies the strict re-validation. All-caps candidates are
// rejected: they are overwhelmingly document headings ("CURRICULUM VITAE"),
// not names.
func validName(candidate string) bool {
	if !nameStrict.MatchString(candidate) {
		return false
	}
	return candidate != strings.ToUpper(candidate)
}

func firstNonEmptyLine(lines []string) string {
	for _, line := range lines {
		if line != "" {
			return line
		}
	}
	return ""
}

// extractPhone tries region-specific formats before the generic
// international digit-run pattern.
func extractPhone(text string) string {
	for _, re := range []*regexp.Regexp{phoneNANP, phoneIndia, phoneGeneric} {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// linkedinFromText is the text-pattern fallback for the LinkedIn field. A
// full profile path is scheme-normalized; a bare label handle is rewritten
// into the canonical profile URL.
func linkedinFromText(text string) string {
	if m := linkedinText.FindString(text); m != "" {
		return links.Normalize(m)
	}
	if m := linkedinLabel.FindStringSubmatch(text); m != nil {
		return "https://linkedin.com/in/" + m[1]
	}
	return ""
}

func githubFromText(text string) string {
	if m := githubText.FindString(text); m != "" {
		return links.Normalize(m)
	}
	if m := githubLabel.FindStringSubmatch(text); m != nil {
		return "https://github.com/" + m[1]
	}
	return ""
}

// portfolioFromText prefers an explicit portfolio/website label, then any
// bare URL that is not a LinkedIn or GitHub link.
func portfolioFromText(text string) string {
	if m := portfolioLabel.FindStringSubmatch(text); m != nil {
		return links.Normalize(m[1])
	}
	for _, m := range bareURL.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if !strings.Contains(lower, "linkedin.com") && !strings.Contains(lower, "github.com") {
			return links.Normalize(m)
		}
	}
	return ""
}

// extractTitle looks for a title-keyword line near the top of the document,
// bounded to avoid swallowing paragraphs.
func (e *Extractor) extractTitle(lines []string) string {
	limit := len(lines)
	if limit > 15 {
		limit = 15
	}
	for _, line := range lines[:limit] {
		if line == "" || len(line) > 80 {
			continue
		}
		if e.titleRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// extractSummary takes the lines following a summary-style heading up to
// the next blank line, capped at 400 characters.
func extractSummary(lines []string) string {
	for i, line := range lines {
		if !summaryLabel.MatchString(line) {
			continue
		}
		var sb strings.Builder
		for _, next := range lines[i+1:] {
			if next == "" {
				break
			}
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(next)
			if sb.Len() >= 400 {
				break
			}
		}
		summary := types.TruncateUTF8(sb.String(), 400)
		return strings.TrimSpace(summary)
	}
	return ""
}

// extractSkills unions curated-vocabulary hits with items parsed from an
// explicit "Skills:" line, deduplicated case-insensitively.
func (e *Extractor) extractSkills(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]bool)
	var skills []string

	add := func(skill string) {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, strings.TrimSpace(skill))
	}

	for _, matcher := range e.skills {
		if matcher.re != nil {
			if matcher.re.MatchString(text) {
				add(matcher.canonical)
			}
		} else if strings.Contains(textLower, matcher.substring) {
			add(matcher.canonical)
		}
	}

	if m := skillsLine.FindStringSubmatch(text); m != nil {
		for _, item := range strings.FieldsFunc(m[1], func(r rune) bool {
			return r == ',' || r == ';' || r == '|'
		}) {
			item = strings.TrimSpace(item)
			if len(item) >= 2 && len(item) <= 24 {
				add(item)
			}
		}
	}
	return skills
}

// extractExperience starts a record at every title-keyword line; the
// company is taken from the following non-empty line, defaulting to
// "Unknown". Intentionally coarse.
func (e *Extractor) extractExperience(lines []string) []types.Experience {
	var entries []types.Experience
	for i, line := range lines {
		if len(entries) >= maxSectionEntries {
			break
		}
		if line == "" || len(line) > 100 || isHeading(line) {
			continue
		}
		if !e.titleRe.MatchString(line) {
			continue
		}

		entry := types.Experience{
			JobTitle: line,
			Company:  nextNonEmpty(lines, i+1),
		}
		if entry.Company == "" || len(entry.Company) > 80 {
			entry.Company = types.UnknownName
		}
		// Look for a date range on the record's own lines.
		window := line
		for j := i + 1; j < len(lines) && j <= i+2; j++ {
			window += "\n" + lines[j]
		}
		if duration := findDuration(window); duration != "" {
			entry.Duration = duration
			entry.StartDate, entry.EndDate = NormalizeDateRange(duration)
		}
		entries = append(entries, entry)
	}
	return entries
}

func (e *Extractor) extractEducation(lines []string) []types.Education {
	var entries []types.Education
	for i, line := range lines {
		if len(entries) >= maxSectionEntries {
			break
		}
		if line == "" || len(line) > 120 || isHeading(line) {
			continue
		}
		if !e.degreeRe.MatchString(line) {
			continue
		}
		entry := types.Education{
			Degree:      line,
			Institution: nextNonEmpty(lines, i+1),
			Year:        yearRe.FindString(line),
		}
		if entry.Institution == "" || len(entry.Institution) > 100 {
			entry.Institution = types.UnknownName
		}
		if entry.Year == "" {
			entry.Year = yearRe.FindString(entry.Institution)
		}
		entries = append(entries, entry)
	}
	return entries
}

func (e *Extractor) extractProjects(lines []string) []types.Project {
	var entries []types.Project
	for _, line := range sectionLines(lines, e.vocab.SectionKeywords["projects"]) {
		if len(entries) >= maxSectionEntries {
			break
		}
		entries = append(entries, types.Project{Name: line})
	}
	return entries
}

func (e *Extractor) extractAchievements(lines []string) []types.Achievement {
	var entries []types.Achievement
	for _, line := range sectionLines(lines, e.vocab.SectionKeywords["achievements"]) {
		if len(entries) >= maxSectionEntries {
			break
		}
		entries = append(entries, types.Achievement{Title: line, Year: yearRe.FindString(line)})
	}
	return entries
}

func (e *Extractor) extractCertifications(lines []string) []types.Certification {
	var entries []types.Certification
	for _, line := range sectionLines(lines, e.vocab.SectionKeywords["certifications"]) {
		if len(entries) >= maxSectionEntries {
			break
		}
		entries = append(entries, types.Certification{Name: line, Year: yearRe.FindString(line)})
	}
	return entries
}

// sectionLines returns the non-heading lines containing one of the section
// keywords, bounded in length.
func sectionLines(lines []string, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	re := keywordUnion(keywords)
	var matched []string
	for _, line := range lines {
		if line == "" || len(line) > 120 || isHeading(line) {
			continue
		}
		if re.MatchString(line) {
			matched = append(matched, line)
		}
	}
	return matched
}

// isHeading reports whether a line is a bare section heading like
// "EXPERIENCE" or "Projects:", which starts a section but is not content.
func isHeading(line string) bool {
	trimmed := strings.ToLower(strings.TrimRight(strings.TrimSpace(line), ":"))
	switch trimmed {
	case "experience", "work experience", "professional experience",
		"education", "skills", "projects", "achievements", "awards",
		"certifications", "certificates", "summary", "objective", "profile":
		return true
	}
	return false
}

func nextNonEmpty(lines []string, from int) string {
	for i := from; i < len(lines); i++ {
		if lines[i] != "" {
			return lines[i]
		}
	}
	return ""
}
