// Package scrape retrieves web pages and extracts their readable text
// for relevance validation and context injection.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gumshoe-dev/gumshoe/internal/httputil"
	"github.com/gumshoe-dev/gumshoe/internal/log"
)

// maxPageBytes bounds how much of a page is read. Pages beyond this are
// truncated rather than rejected; the leading content is what matters
// for relevance checks.
const maxPageBytes = 2 << 20 // 2 MiB

// ErrNoContent is returned when a page yields no readable text.
var ErrNoContent = fmt.Errorf("no readable content")

// FetcherOptions configures the Fetcher.
type FetcherOptions struct {
	// Logger for diagnostics. If nil, uses log.Default().
	Logger log.Logger

	// HTTPClient for requests. If nil, a bounded-timeout client from
	// httputil is used.
	HTTPClient *http.Client
}

// Fetcher retrieves a page and extracts its readable text. One call
// issues one request with no internal retry; the retrieval loop moves
// on to another candidate on failure.
type Fetcher struct {
	client *http.Client
	logger log.Logger
}

// NewFetcher creates a page fetcher with default options.
func NewFetcher() *Fetcher {
	return NewFetcherWithOptions(FetcherOptions{})
}

// NewFetcherWithOptions creates a page fetcher with custom options.
func NewFetcherWithOptions(opts FetcherOptions) *Fetcher {
	f := &Fetcher{
		client: opts.HTTPClient,
		logger: opts.Logger,
	}

	if f.client == nil {
		f.client = httputil.NewClient(httputil.DefaultOptions())
	}
	if f.logger == nil {
		f.logger = log.Default()
	}

	return f
}

// Fetch retrieves the page at pageURL and returns its readable text.
// Network failures, non-HTML content and empty extractions all return
// an error; the caller treats any error as "no content here".
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create fetch request: %w", err)
	}
	req.Header.Set("User-Agent", httputil.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isHTMLContentType(contentType) {
		return "", fmt.Errorf("fetch %s: unsupported content type %q", pageURL, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}

	text := ExtractText(string(body))
	if text == "" {
		return "", ErrNoContent
	}

	f.logger.Debug("page scraped", "url", pageURL, "chars", len(text))
	return text, nil
}

// isHTMLContentType reports whether the Content-Type header names a
// document the extractor can handle.
func isHTMLContentType(contentType string) bool {
	for _, prefix := range []string{"text/html", "application/xhtml+xml", "text/plain"} {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
