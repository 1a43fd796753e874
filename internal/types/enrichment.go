package types

// LinkedInEnrichment is the typed record for profile enrichment data.
// Every field is optional; an empty value means the source page did not
// expose it. This replaces the open-ended dynamic payloads the persistence
// layer previously accepted.
type LinkedInEnrichment struct {
	Name       string   `json:"name,omitempty"`
	Headline   string   `json:"headline,omitempty"`
	Company    string   `json:"company,omitempty"`
	Location   string   `json:"location,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	OpenToWork bool     `json:"open_to_work,omitempty"`
	ProfileURL string   `json:"profile_url,omitempty"`
}

// IsZero reports whether the page yielded no profile content. ProfileURL
// is provenance, echoed from the request, so it does not count as content.
func (e *LinkedInEnrichment) IsZero() bool {
	return e.Name == "" && e.Headline == "" && e.Company == "" &&
		e.Location == "" && len(e.Skills) == 0 && !e.OpenToWork
}
