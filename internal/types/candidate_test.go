package types

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaults(t *testing.T) {
	t.Run("blank name becomes the sentinel", func(t *testing.T) {
		for _, name := range []string{"", "   ", "\t\n"} {
			p := &CandidateProfile{Name: name}
			p.EnsureDefaults()
			assert.Equal(t, UnknownName, p.Name)
		}
	})

	t.Run("real name is kept", func(t *testing.T) {
		p := &CandidateProfile{Name: "Jane Roe"}
		p.EnsureDefaults()
		assert.Equal(t, "Jane Roe", p.Name)
	})

	t.Run("nil collections marshal as empty arrays", func(t *testing.T) {
		p := &CandidateProfile{Name: "Jane Roe"}
		p.EnsureDefaults()

		data, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"skills":[]`)
		assert.Contains(t, string(data), `"experience":[]`)
		assert.NotContains(t, string(data), "null")
	})

	t.Run("populated collections are untouched", func(t *testing.T) {
		p := &CandidateProfile{
			Name:   "Jane Roe",
			Skills: []string{"Go"},
		}
		p.EnsureDefaults()
		assert.Equal(t, []string{"Go"}, p.Skills)
	})
}

func TestCandidateProfile_Validate(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		p := &CandidateProfile{Name: "Jane Roe", Email: "jane@example.com"}
		assert.NoError(t, p.Validate())
	})

	t.Run("empty email is allowed", func(t *testing.T) {
		p := &CandidateProfile{Name: "Jane Roe"}
		assert.NoError(t, p.Validate())
	})

	t.Run("missing name fails", func(t *testing.T) {
		p := &CandidateProfile{Email: "jane@example.com"}
		assert.Error(t, p.Validate())
	})

	t.Run("malformed email fails", func(t *testing.T) {
		p := &CandidateProfile{Name: "Jane Roe", Email: "not-an-email"}
		assert.Error(t, p.Validate())
	})
}

func TestHasAnyLink(t *testing.T) {
	assert.False(t, (&CandidateProfile{}).HasAnyLink())
	assert.True(t, (&CandidateProfile{LinkedInURL: "https://linkedin.com/in/x"}).HasAnyLink())
	assert.True(t, (&CandidateProfile{GitHubURL: "https://github.com/x"}).HasAnyLink())
	assert.True(t, (&CandidateProfile{PortfolioURL: "https://x.dev"}).HasAnyLink())
}

func TestRawExtraction_Empty(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"no text", "", true},
		{"whitespace only", "   \n\t  \r\n ", true},
		{"below the threshold", "John Doe", true},
		{"at the threshold", "0123456789", false},
		{"real content", "John Smith\nSenior Engineer", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &RawExtraction{Text: tt.text}
			assert.Equal(t, tt.want, raw.Empty())
		})
	}
}

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte rune at the cut is dropped whole", "aaé", 3, "aa"},
		{"cut lands on a rune boundary", "aaé", 4, "aaé"},
		{"three-byte rune straddles the cut", "ab…cd", 4, "ab"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateUTF8(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestRawExtraction_EmptyIgnoresHyperlinks(t *testing.T) {
	// The empty signal is about the text layer; links do not rescue it.
	raw := &RawExtraction{
		Text:       "  ",
		Hyperlinks: []Hyperlink{{URL: "https://linkedin.com/in/x"}},
	}
	assert.True(t, raw.Empty())
}
