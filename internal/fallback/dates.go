package fallback

import (
	"fmt"
	"regexp"
	"strings"
)

// monthTable maps month abbreviations and names to their zero-padded number.
var monthTable = map[string]string{
	"jan": "01", "january": "01",
	"feb": "02", "february": "02",
	"mar": "03", "march": "03",
	"apr": "04", "april": "04",
	"may": "05",
	"jun": "06", "june": "06",
	"jul": "07", "july": "07",
	"aug": "08", "august": "08",
	"sep": "09", "sept": "09", "september": "09",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}

var (
	monthYear  = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?\s+(\d{4})\b`)
	numericYM  = regexp.MustCompile(`\b(\d{1,2})\s*/\s*(\d{4})\b`)
	rangeSplit = regexp.MustCompile(`\s*(?:-|–|—|\bto\b)\s*`)
	presentRe  = regexp.MustCompile(`(?i)\b(present|current|now)\b`)

	// dateRange locates a duration string in free text, e.g.
	// "Dec 2023 - Feb 2025" or "06/2021 to Present".
	dateRange = regexp.MustCompile(`(?i)((?:[A-Za-z]{3,9}\.?\s+\d{4}|\d{1,2}\s*/\s*\d{4}))\s*(?:-|–|—|to)\s*((?:[A-Za-z]{3,9}\.?\s+\d{4}|\d{1,2}\s*/\s*\d{4}|present|current|now))`)
)

// NormalizeDateRange splits a raw duration string and normalizes both ends
// to "YYYY-MM", or the literal "Present" for an open-ended range. An end
// that cannot be parsed stays empty; nothing is fabricated.
func NormalizeDateRange(duration string) (startDate, endDate string) {
	parts := rangeSplit.Split(strings.TrimSpace(duration), 2)
	if len(parts) == 0 {
		return "", ""
	}
	startDate = normalizeDateToken(parts[0])
	if len(parts) == 2 {
		endDate = normalizeDateToken(parts[1])
	}
	return startDate, endDate
}

// normalizeDateToken maps one side of a range to "YYYY-MM" or "Present".
func normalizeDateToken(token string) string {
	token = strings.TrimSpace(token)
	if presentRe.MatchString(token) {
		return "Present"
	}
	if m := monthYear.FindStringSubmatch(token); m != nil {
		if num, ok := monthTable[strings.ToLower(m[1])]; ok {
			return fmt.Sprintf("%s-%s", m[2], num)
		}
		return ""
	}
	if m := numericYM.FindStringSubmatch(token); m != nil {
		month := m[1]
		if len(month) == 1 {
			month = "0" + month
		}
		if month >= "01" && month <= "12" {
			return fmt.Sprintf("%s-%s", m[2], month)
		}
	}
	return ""
}

// findDuration returns the first duration-looking substring in the text,
// or "" when none is present.
func findDuration(text string) string {
	return dateRange.FindString(text)
}
