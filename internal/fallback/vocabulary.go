package fallback

import (
	"encoding/json"
	"fmt"
	"os"

	_ "embed"
)

//go:embed vocabulary.json
var defaultVocabularyJSON []byte

// Vocabulary holds the keyword tables the fallback extractor matches
// against. The tables are configuration data, not logic: the extractor core
// stays pure and testable against a fixed vocabulary.
type Vocabulary struct {
	// Skills is the curated whole-word skill list (languages, frameworks,
	// datastores, cloud/devops tools).
	Skills []string `json:"skills"`
	// TitleKeywords mark a line as a probable job title.
	TitleKeywords []string `json:"title_keywords"`
	// DegreeKeywords mark a line as a probable education entry.
	DegreeKeywords []string `json:"degree_keywords"`
	// SectionKeywords mark lines belonging to the remaining record sections.
	SectionKeywords map[string][]string `json:"section_keywords"`
}

// DefaultVocabulary returns the embedded vocabulary tables.
func DefaultVocabulary() *Vocabulary {
	var vocab Vocabulary
	// The embedded file is validated by tests; a decode failure here is a
	// build defect.
	if err := json.Unmarshal(defaultVocabularyJSON, &vocab); err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return &vocab
}

// LoadVocabulary reads an externally supplied vocabulary file, allowing
// deployments to tune the keyword tables without a rebuild.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}
	var vocab Vocabulary
	if err := json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}
	return &vocab, nil
}
