package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileHTML = `
<html>
<head><meta property="og:title" content="Jane Roe - Software Engineer at Acme | LinkedIn"></head>
<body>
	<div class="top-card-layout">
		<h1 class="top-card-layout__title">Jane Roe</h1>
		<h2 class="top-card-layout__headline">Software Engineer at Acme #OpenToWork</h2>
		<span class="top-card__subline-item">Berlin, Germany</span>
	</div>
	<section class="experience">
		<ul>
			<li>
				<h3>Software Engineer</h3>
				<p class="experience-item__subtitle">Acme Corp</p>
			</li>
			<li>
				<h3>Junior Developer</h3>
				<p class="experience-item__subtitle">Initech</p>
			</li>
		</ul>
	</section>
	<section class="skills">
		<ul>
			<li>Go</li>
			<li>Distributed Systems</li>
			<li>go</li>
		</ul>
	</section>
</body>
</html>`

func TestParseProfileHTML(t *testing.T) {
	enrichment, err := ParseProfileHTML(profileHTML, "https://linkedin.com/in/janeroe")
	require.NoError(t, err)
	require.NotNil(t, enrichment)

	assert.Equal(t, "Jane Roe", enrichment.Name)
	assert.Contains(t, enrichment.Headline, "Software Engineer at Acme")
	assert.Equal(t, "Berlin, Germany", enrichment.Location)
	assert.Equal(t, "Acme Corp", enrichment.Company, "company must come from the first experience entry")
	assert.Equal(t, []string{"Go", "Distributed Systems"}, enrichment.Skills, "skills deduplicate case-insensitively")
	assert.True(t, enrichment.OpenToWork)
	assert.Equal(t, "https://linkedin.com/in/janeroe", enrichment.ProfileURL)
	assert.False(t, enrichment.IsZero())
}

func TestParseProfileHTML_OGTitleFallback(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Bob Ray - Designer | LinkedIn">
	</head><body><div>nothing rendered</div></body></html>`

	enrichment, err := ParseProfileHTML(html, "https://linkedin.com/in/bobray")
	require.NoError(t, err)
	assert.Equal(t, "Bob Ray", enrichment.Name)
}

func TestParseProfileHTML_EmptyPage(t *testing.T) {
	enrichment, err := ParseProfileHTML("<html><body></body></html>", "https://linkedin.com/in/ghost")
	require.NoError(t, err)

	// The echoed request URL is provenance, not page content; a login wall
	// or empty shell must still register as an empty result.
	assert.Equal(t, "https://linkedin.com/in/ghost", enrichment.ProfileURL)
	assert.True(t, enrichment.IsZero())
}

func TestFetcher_EnrichProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(profileHTML))
	}))
	defer server.Close()

	fetcher := &Fetcher{}
	enrichment, err := fetcher.EnrichProfile(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", enrichment.Name)
}

func TestFetcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetcher := &Fetcher{}
	_, err := fetcher.FetchHTML(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "429")
}

func TestFetcher_InvalidURL(t *testing.T) {
	fetcher := &Fetcher{}
	_, err := fetcher.FetchHTML(context.Background(), "not a url")
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
