package enrichment

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeExtractor/1.0)"

// minRenderedLength is the minimum HTML length below which the plain HTTP
// response is assumed to be a JavaScript shell and the browser path kicks in.
const minRenderedLength = 2000

// FetchError represents an error while fetching a profile page.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Fetcher retrieves profile pages, optionally through a headless browser
// for pages that render client-side. The zero value is usable.
type Fetcher struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool
	Verbose    bool
}

func (f *Fetcher) timeout() time.Duration {
	if f.Timeout <= 0 {
		return DefaultTimeout
	}
	return f.Timeout
}

func (f *Fetcher) userAgent() string {
	if f.UserAgent == "" {
		return DefaultUserAgent
	}
	return f.UserAgent
}

// FetchHTML retrieves the page at the URL. When the plain response looks
// like an unrendered SPA shell and browser use is enabled, the page is
// re-fetched through headless Chrome.
func (f *Fetcher) FetchHTML(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, err := f.fetchPlain(ctx, urlStr)
	if err != nil {
		if !f.UseBrowser {
			return "", err
		}
		if f.Verbose {
			log.Printf("[BROWSER] plain fetch failed (%v), rendering %s", err, urlStr)
		}
		return f.fetchRendered(ctx, urlStr)
	}

	if f.UseBrowser && len(strings.TrimSpace(html)) < minRenderedLength {
		if f.Verbose {
			log.Printf("[BROWSER] thin response (%d bytes), rendering %s", len(html), urlStr)
		}
		return f.fetchRendered(ctx, urlStr)
	}
	return html, nil
}

func (f *Fetcher) fetchPlain(ctx context.Context, urlStr string) (string, error) {
	client := &http.Client{Timeout: f.timeout()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent())

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}

// fetchRendered loads the page in headless Chrome and returns the rendered
// DOM. Requires Chrome/Chromium on the host.
func (f *Fetcher) fetchRendered(ctx context.Context, urlStr string) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout())
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill the profile card.
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}
	return html, nil
}

// EnrichProfile fetches and parses a LinkedIn profile URL in one step.
func (f *Fetcher) EnrichProfile(ctx context.Context, profileURL string) (*types.LinkedInEnrichment, error) {
	html, err := f.FetchHTML(ctx, profileURL)
	if err != nil {
		return nil, err
	}
	return ParseProfileHTML(html, profileURL)
}
