// Package search provides web search for the retrieval pipeline.
//
// A Provider turns a query string into a bounded, ordered list of
// candidate results. The only backend is DuckDuckGo's HTML interface;
// no API key is required.
package search

import "context"

// MaxResults caps the number of candidates returned by one search.
const MaxResults = 10

// Candidate is one search result awaiting evaluation.
type Candidate struct {
	// Index is the candidate's rank in the original result set,
	// starting at 0. Indices are assigned once per search and are not
	// renumbered when the working set shrinks during retrieval.
	Index int

	// Link is the result URL.
	Link string

	// Snippet is the short result description shown on the result page.
	Snippet string
}

// Provider defines the interface for web search backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "ddg").
	Name() string

	// Search performs a web search and returns at most MaxResults
	// candidates in rank order. A request failure returns an error;
	// an answered query with no results returns an empty slice.
	Search(ctx context.Context, query string) ([]Candidate, error)
}
