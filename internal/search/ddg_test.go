package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gumshoe-dev/gumshoe/internal/log"
)

func TestDDGProviderName(t *testing.T) {
	p := NewDDGProvider()
	if p.Name() != "ddg" {
		t.Errorf("expected name 'ddg', got %q", p.Name())
	}
}

func TestParseResults(t *testing.T) {
	html := `
<div class="result">
  <a class="result__a" href="https://en.wikipedia.org/wiki/Paris">Paris - Wikipedia</a>
  <a class="result__snippet">Paris is the <b>capital</b> of France</a>
</div>
<div class="result">
  <a class="result__a" href="https://www.britannica.com/place/Paris">Paris | Britannica</a>
  <a class="result__snippet">History and facts about Paris</a>
</div>
`
	results := parseResults(html)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Link != "https://en.wikipedia.org/wiki/Paris" {
		t.Errorf("unexpected link: %s", results[0].Link)
	}
	if results[0].Snippet != "Paris is the capital of France" {
		t.Errorf("expected snippet with tags stripped, got %q", results[0].Snippet)
	}
	if results[0].Index != 0 || results[1].Index != 1 {
		t.Errorf("expected rank indices 0,1, got %d,%d", results[0].Index, results[1].Index)
	}
}

func TestParseResultsSkipsBlocksWithoutLink(t *testing.T) {
	html := `
<div class="result">
  <span>sponsored filler without a result link</span>
</div>
<div class="result">
  <a class="result__a" href="https://example.com/real">Real result</a>
</div>
`
	results := parseResults(html)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Index != 0 {
		t.Errorf("skipped block must not consume a slot; got index %d", results[0].Index)
	}
	if results[0].Link != "https://example.com/real" {
		t.Errorf("unexpected link: %s", results[0].Link)
	}
}

func TestParseResultsSnippetDefault(t *testing.T) {
	html := `<div class="result"><a class="result__a" href="https://example.com">X</a></div>`

	results := parseResults(html)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Snippet != "No description available" {
		t.Errorf("expected default snippet, got %q", results[0].Snippet)
	}
}

func TestParseResultsCapsAtMaxResults(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&sb, `<div class="result"><a class="result__a" href="https://example.com/%d">R%d</a></div>`, i, i)
	}

	results := parseResults(sb.String())
	if len(results) != MaxResults {
		t.Errorf("expected %d results, got %d", MaxResults, len(results))
	}
	if results[MaxResults-1].Index != MaxResults-1 {
		t.Errorf("expected last index %d, got %d", MaxResults-1, results[MaxResults-1].Index)
	}
}

func TestDecodeRedirectURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			input:    "//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FParis",
			expected: "https://en.wikipedia.org/wiki/Paris",
		},
		{
			input:    "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=abc123",
			expected: "https://example.com/page",
		},
		{
			input:    "https://example.com/direct",
			expected: "https://example.com/direct",
		},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := decodeRedirectURL(tc.input); got != tc.expected {
				t.Errorf("decodeRedirectURL(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSearchAgainstServer(t *testing.T) {
	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<div class="result"><a class="result__a" href="https://example.com">Hit</a><a class="result__snippet">snippet</a></div>`)
	}))
	defer server.Close()

	p := NewDDGProviderWithOptions(DDGOptions{
		BaseURL: server.URL + "/html/?q=",
		Logger:  log.NewNoop(),
	})

	results, err := p.Search(context.Background(), `"capital of France" site:wikipedia.org`)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if gotQuery != `"capital of France" site:wikipedia.org` {
		t.Errorf("query not URL-encoded round-trip: %q", gotQuery)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("expected a browser user agent, got %q", gotUA)
	}
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	p := NewDDGProviderWithOptions(DDGOptions{
		BaseURL: server.URL + "/html/?q=",
		Logger:  log.NewNoop(),
	})

	if _, err := p.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestSearchUnreachable(t *testing.T) {
	p := NewDDGProviderWithOptions(DDGOptions{
		BaseURL: "http://127.0.0.1:1/html/?q=",
		Logger:  log.NewNoop(),
	})

	if _, err := p.Search(context.Background(), "anything"); err == nil {
		t.Error("expected error for unreachable server")
	}
}
