package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gumshoe-dev/gumshoe/internal/httputil"
	"github.com/gumshoe-dev/gumshoe/internal/log"
)

// ddgURL is the result-page URL template. The HTML endpoint serves
// plain markup without JavaScript, which is what the parser expects.
const ddgURL = "https://duckduckgo.com/html/?q="

// DDGOptions configures the DDGProvider.
type DDGOptions struct {
	// Logger for diagnostics. If nil, uses log.Default().
	Logger log.Logger

	// HTTPClient for requests. If nil, a bounded-timeout client from
	// httputil is used.
	HTTPClient *http.Client

	// BaseURL overrides the result-page URL template (for testing).
	BaseURL string
}

// DDGProvider implements Provider using DuckDuckGo's HTML interface.
// One call issues one request; the retrieval loop is responsible for
// retrying via different candidates, not the provider.
type DDGProvider struct {
	client  *http.Client
	logger  log.Logger
	baseURL string
}

// NewDDGProvider creates a DuckDuckGo search provider with default options.
func NewDDGProvider() *DDGProvider {
	return NewDDGProviderWithOptions(DDGOptions{})
}

// NewDDGProviderWithOptions creates a DuckDuckGo search provider with custom options.
func NewDDGProviderWithOptions(opts DDGOptions) *DDGProvider {
	p := &DDGProvider{
		client:  opts.HTTPClient,
		logger:  opts.Logger,
		baseURL: opts.BaseURL,
	}

	if p.client == nil {
		p.client = httputil.NewClient(httputil.DefaultOptions())
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	if p.baseURL == "" {
		p.baseURL = ddgURL
	}

	return p
}

// Name returns the provider identifier.
func (p *DDGProvider) Name() string {
	return "ddg"
}

// Search fetches the first result page for query and returns at most
// MaxResults candidates in rank order.
func (p *DDGProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	// A browser user agent is required; default Go agents get blocked.
	req.Header.Set("User-Agent", httputil.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	results := parseResults(string(body))
	p.logger.Info("search results fetched", "query", query, "count", len(results))
	return results, nil
}

// Result-page markup: each hit is a <div class="result"> block with an
// <a class="result__a"> title link and an <a class="result__snippet">.
var (
	titleRe   = regexp.MustCompile(`<a[^>]*class="result__a"[^>]*href="([^"]*)"[^>]*>`)
	snippetRe = regexp.MustCompile(`(?s)<a[^>]*class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
)

// parseResults extracts candidates from the result-page HTML. Blocks
// without a title link are skipped without consuming one of the
// MaxResults slots. Indices equal the candidate's rank in the returned
// slice.
func parseResults(html string) []Candidate {
	var results []Candidate

	blocks := strings.Split(html, `<div class="result`)
	for _, block := range blocks[1:] {
		if len(results) >= MaxResults {
			break
		}

		title := titleRe.FindStringSubmatch(block)
		if title == nil {
			continue
		}

		link := decodeRedirectURL(title[1])
		if link == "" {
			continue
		}

		snippet := "No description available"
		if m := snippetRe.FindStringSubmatch(block); m != nil {
			if text := strings.TrimSpace(tagRe.ReplaceAllString(m[1], "")); text != "" {
				snippet = text
			}
		}

		results = append(results, Candidate{
			Index:   len(results),
			Link:    link,
			Snippet: snippet,
		})
	}

	return results
}

// decodeRedirectURL unwraps DuckDuckGo's /l/?uddg= redirect links to
// the actual target. Non-redirect links are returned unchanged.
func decodeRedirectURL(rawURL string) string {
	prefix := "//duckduckgo.com/l/?uddg="
	idx := strings.Index(rawURL, prefix)
	if idx < 0 {
		return rawURL
	}

	encoded := rawURL[idx+len(prefix):]
	if amp := strings.Index(encoded, "&"); amp > 0 {
		encoded = encoded[:amp]
	}

	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		return rawURL
	}

	return decoded
}
