package agent

import (
	"context"
	"strings"

	"github.com/gumshoe-dev/gumshoe/internal/llm"
	"github.com/gumshoe-dev/gumshoe/internal/log"
)

// Judge makes the two model-backed yes/no decisions in the pipeline:
// whether the latest user turn needs a search at all, and whether a
// scraped page answers it.
type Judge struct {
	provider llm.Provider
	logger   log.Logger
}

// NewJudge creates a Judge. A nil logger falls back to log.Default().
func NewJudge(provider llm.Provider, logger log.Logger) *Judge {
	if logger == nil {
		logger = log.Default()
	}
	return &Judge{provider: provider, logger: logger}
}

// NeedsSearch asks whether the latest user turn requires external
// lookup. Any model failure degrades to false: when in doubt, answer
// from the conversation alone.
func (j *Judge) NeedsSearch(ctx context.Context, convo *Conversation) bool {
	reply, err := j.provider.Chat(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: searchDecisionPersona},
			{Role: llm.RoleUser, Content: convo.Latest()},
		},
	})
	if err != nil {
		j.logger.Error("search decision failed", "error", err)
		return false
	}

	j.logger.Info("search decision", "verdict", strings.TrimSpace(reply))
	return containsTrue(reply)
}

// IsRelevant asks whether pageText contains what is needed to answer
// the latest user turn, given the query that found the page. The full
// page text is embedded in the prompt. Model failure degrades to
// false, which sends the retrieval loop on to the next candidate.
func (j *Judge) IsRelevant(ctx context.Context, pageText, query string, convo *Conversation) bool {
	reply, err := j.provider.Chat(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: pageValidatorPersona},
			{Role: llm.RoleUser, Content: buildValidatorMessage(pageText, convo.Latest(), query)},
		},
	})
	if err != nil {
		j.logger.Error("page validation failed", "error", err)
		return false
	}

	j.logger.Debug("page validation", "verdict", strings.TrimSpace(reply))
	return containsTrue(reply)
}

// containsTrue interprets a model verdict: true iff the text contains
// the token "true" in any casing. Substring matching is the historical
// contract; a stricter exact match would change behavior on sloppy
// model output, so it stays as is.
func containsTrue(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "true")
}
