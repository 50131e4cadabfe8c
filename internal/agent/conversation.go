// Package agent implements the retrieval-augmentation pipeline: the
// search decision, query planning, candidate selection, page
// validation, the bounded retry loop that ties them together, and the
// conversation the user talks to.
package agent

import (
	"context"
	"fmt"

	"github.com/gumshoe-dev/gumshoe/internal/llm"
	"github.com/gumshoe-dev/gumshoe/internal/log"
)

// Conversation owns the ordered message history the model sees.
// It always starts with the assistant persona system message and is
// mutated only by appending turns, or by retracting a trailing user
// turn so it can be replaced with an augmented one.
//
// There is no locking: a Conversation has a single exclusive owner and
// is driven by one control flow per turn.
type Conversation struct {
	messages []llm.Message
}

// NewConversation creates a conversation seeded with the assistant
// persona.
func NewConversation() *Conversation {
	return &Conversation{
		messages: []llm.Message{
			{Role: llm.RoleSystem, Content: assistantPersona},
		},
	}
}

// AppendUser appends a user turn.
func (c *Conversation) AppendUser(text string) {
	c.messages = append(c.messages, llm.Message{Role: llm.RoleUser, Content: text})
}

// AppendAssistant appends an assistant turn.
func (c *Conversation) AppendAssistant(text string) {
	c.messages = append(c.messages, llm.Message{Role: llm.RoleAssistant, Content: text})
}

// RemoveLastUser retracts the most recent turn if it is a user turn.
// Used to replace a provisional user turn with an augmented one after
// retrieval. Returns false if the last turn is not a user turn.
func (c *Conversation) RemoveLastUser() bool {
	if len(c.messages) == 0 {
		return false
	}
	last := len(c.messages) - 1
	if c.messages[last].Role != llm.RoleUser {
		return false
	}
	c.messages = c.messages[:last]
	return true
}

// Latest returns the content of the most recent turn. The retrieval
// pipeline consults it while the user's turn is the newest message.
func (c *Conversation) Latest() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1].Content
}

// Messages returns a copy of the ordered history.
func (c *Conversation) Messages() []llm.Message {
	out := make([]llm.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of turns, including the system message.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// SearchJudge decides whether the latest user turn needs a web search.
type SearchJudge interface {
	NeedsSearch(ctx context.Context, convo *Conversation) bool
}

// ContextRetriever runs the full retrieval pipeline for the latest
// user turn.
type ContextRetriever interface {
	Retrieve(ctx context.Context, convo *Conversation) Outcome
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// Provider generates replies. Required.
	Provider llm.Provider

	// Judge decides whether to search. Required.
	Judge SearchJudge

	// Retriever finds web context. Required.
	Retriever ContextRetriever

	// Logger for diagnostics. If nil, uses log.Default().
	Logger log.Logger
}

// Manager owns the conversation and drives one full user turn:
// append, decide, retrieve, augment, generate.
type Manager struct {
	convo     *Conversation
	provider  llm.Provider
	judge     SearchJudge
	retriever ContextRetriever
	logger    log.Logger
}

// NewManager creates a Manager with a fresh conversation.
func NewManager(opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		convo:     NewConversation(),
		provider:  opts.Provider,
		judge:     opts.Judge,
		retriever: opts.Retriever,
		logger:    logger,
	}
}

// Conversation returns the managed conversation.
func (m *Manager) Conversation() *Conversation {
	return m.convo
}

// HandleTurn runs one full user turn. If the judge calls for a search,
// the provisional user turn is retracted and replaced with either the
// augmented prompt (context found) or the failure prompt (nothing
// found), then a reply is generated and streamed through onChunk.
func (m *Manager) HandleTurn(ctx context.Context, userText string, onChunk llm.StreamFunc) error {
	m.convo.AppendUser(userText)

	if m.judge.NeedsSearch(ctx, m.convo) {
		m.logger.Info("search needed, starting retrieval")
		outcome := m.retriever.Retrieve(ctx, m.convo)

		m.convo.RemoveLastUser()
		if outcome.Found {
			m.convo.AppendUser(buildAugmentedPrompt(outcome.Text, userText))
		} else {
			m.convo.AppendUser(buildFailurePrompt(userText))
		}
	}

	return m.GenerateReply(ctx, onChunk)
}

// GenerateReply streams a reply over the full current conversation,
// emitting chunks through onChunk as they arrive. On success the
// accumulated text is appended as one assistant turn; on failure
// nothing is appended and the error is returned for the caller to
// surface.
func (m *Manager) GenerateReply(ctx context.Context, onChunk llm.StreamFunc) error {
	full, err := m.provider.ChatStream(ctx, &llm.ChatRequest{Messages: m.convo.Messages()}, onChunk)
	if err != nil {
		m.logger.Error("reply generation failed", "error", err)
		return fmt.Errorf("generate reply: %w", err)
	}

	m.convo.AppendAssistant(full)
	return nil
}
