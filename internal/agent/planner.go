package agent

import (
	"context"
	"strconv"
	"strings"

	"github.com/gumshoe-dev/gumshoe/internal/llm"
	"github.com/gumshoe-dev/gumshoe/internal/log"
	"github.com/gumshoe-dev/gumshoe/internal/search"
)

// SelectAttempts bounds the model retries when parsing a candidate
// selection.
const SelectAttempts = 3

// Planner turns the conversation into a search query and picks the
// most promising candidate out of a result list.
type Planner struct {
	provider llm.Provider
	logger   log.Logger
}

// NewPlanner creates a Planner. A nil logger falls back to log.Default().
func NewPlanner(provider llm.Provider, logger log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{provider: provider, logger: logger}
}

// GenerateQuery asks the model for a search-engine-optimized query for
// the latest user turn. On model failure the raw user text is used
// instead. Literal double quotes are stripped from the result: the
// model sometimes wraps its whole answer in quotes, which would turn
// the entire query into one exact-phrase match.
func (p *Planner) GenerateQuery(ctx context.Context, convo *Conversation) string {
	query, err := p.provider.Chat(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: queryGeneratorPersona},
			{Role: llm.RoleUser, Content: queryRequestPrefix + convo.Latest()},
		},
	})
	if err != nil {
		p.logger.Error("query generation failed, using raw prompt", "error", err)
		query = convo.Latest()
	}

	query = strings.ReplaceAll(query, `"`, "")
	p.logger.Info("search query generated", "query", query)
	return query
}

// SelectBest asks the model for the index of the best candidate and
// clamps the answer into the candidate list's bounds. The model call is
// retried up to SelectAttempts times on failure or an unparseable
// reply; after that, and for an empty candidate list, index 0 is
// returned without further model calls.
func (p *Planner) SelectBest(ctx context.Context, candidates []search.Candidate, query string, convo *Conversation) int {
	if len(candidates) == 0 {
		return 0
	}

	message := buildSelectorMessage(candidates, convo.Latest(), query)

	for attempt := 1; attempt <= SelectAttempts; attempt++ {
		reply, err := p.provider.Chat(ctx, &llm.ChatRequest{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: resultSelectorPersona},
				{Role: llm.RoleUser, Content: message},
			},
		})
		if err != nil {
			p.logger.Error("candidate selection failed", "attempt", attempt, "error", err)
			continue
		}

		idx, err := strconv.Atoi(strings.TrimSpace(reply))
		if err != nil {
			p.logger.Error("unparseable selection", "attempt", attempt, "reply", strings.TrimSpace(reply))
			continue
		}

		if idx < 0 {
			idx = 0
		}
		if idx > len(candidates)-1 {
			idx = len(candidates) - 1
		}
		return idx
	}

	return 0
}
