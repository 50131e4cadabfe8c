package agent

import (
	"context"

	"github.com/gumshoe-dev/gumshoe/internal/log"
	"github.com/gumshoe-dev/gumshoe/internal/search"
)

// RetrieveAttempts bounds the select-fetch-validate loop inside a
// single retrieval run.
const RetrieveAttempts = 5

// Outcome is the result of one retrieval run. Text holds the validated
// page content when Found is true and is empty otherwise.
type Outcome struct {
	Text  string
	Found bool
}

// QueryPlanner generates queries and ranks candidate lists.
type QueryPlanner interface {
	GenerateQuery(ctx context.Context, convo *Conversation) string
	SelectBest(ctx context.Context, candidates []search.Candidate, query string, convo *Conversation) int
}

// RelevanceJudge decides whether fetched page text answers the user.
type RelevanceJudge interface {
	IsRelevant(ctx context.Context, pageText, query string, convo *Conversation) bool
}

// PageFetcher downloads a URL and returns its readable text.
type PageFetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

// RetrieverOptions configures NewRetriever. Planner, Provider, Judge
// and Fetcher are required; Logger defaults to log.Default().
type RetrieverOptions struct {
	Planner  QueryPlanner
	Provider search.Provider
	Judge    RelevanceJudge
	Fetcher  PageFetcher
	Logger   log.Logger
}

// Retriever runs the full retrieval pipeline: query generation, web
// search, candidate selection, page fetching and relevance validation.
type Retriever struct {
	planner  QueryPlanner
	provider search.Provider
	judge    RelevanceJudge
	fetcher  PageFetcher
	logger   log.Logger
}

// NewRetriever creates a Retriever from opts.
func NewRetriever(opts RetrieverOptions) *Retriever {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Retriever{
		planner:  opts.Planner,
		provider: opts.Provider,
		judge:    opts.Judge,
		fetcher:  opts.Fetcher,
		logger:   logger,
	}
}

// Retrieve attempts to find page content relevant to the latest user
// turn. It searches once, then tries up to RetrieveAttempts candidates:
// each attempt picks the most promising remaining candidate, fetches
// its page and validates the text against the conversation. Rejected
// and unfetchable candidates are removed so an attempt is never
// repeated. A failed or empty search ends the run immediately.
func (r *Retriever) Retrieve(ctx context.Context, convo *Conversation) Outcome {
	query := r.planner.GenerateQuery(ctx, convo)

	candidates, err := r.provider.Search(ctx, query)
	if err != nil {
		r.logger.Error("web search failed", "query", query, "error", err)
		return Outcome{}
	}
	if len(candidates) == 0 {
		r.logger.Warn("web search returned no results", "query", query)
		return Outcome{}
	}

	for attempt := 1; attempt <= RetrieveAttempts; attempt++ {
		if len(candidates) == 0 {
			break
		}

		idx := r.planner.SelectBest(ctx, candidates, query, convo)
		if idx >= len(candidates) {
			r.logger.Warn("selection out of range", "index", idx, "candidates", len(candidates))
			continue
		}

		link := candidates[idx].Link
		text, err := r.fetcher.Fetch(ctx, link)
		if err != nil {
			r.logger.Warn("page fetch failed", "link", link, "error", err)
			candidates = append(candidates[:idx], candidates[idx+1:]...)
			continue
		}

		if r.judge.IsRelevant(ctx, text, query, convo) {
			r.logger.Info("relevant page found", "link", link, "attempt", attempt)
			return Outcome{Text: text, Found: true}
		}

		r.logger.Debug("page rejected", "link", link, "attempt", attempt)
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}

	return Outcome{}
}
