// Package llm provides the language-model capability behind gumshoe's
// chat loop and retrieval pipeline.
//
// The Provider interface covers single-turn completion and streamed
// generation. Each implementation (Ollama, Claude, Gemini) converts
// between the common Message type and its backend's wire format.
// Providers are stateless; callers own the conversation history.
package llm

import "context"

// Role identifies the sender of a message in a conversation.
type Role string

const (
	// RoleSystem indicates an instruction persona message.
	RoleSystem Role = "system"

	// RoleUser indicates a message from the user or the pipeline.
	RoleUser Role = "user"

	// RoleAssistant indicates a message from the model.
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role    Role
	Content string
}

// ChatRequest contains the ordered history for one model call.
// System-role messages may appear anywhere in the slice; providers
// whose APIs take the system prompt out of band extract them.
type ChatRequest struct {
	Messages []Message
}

// StreamFunc receives incremental text chunks during streamed generation.
type StreamFunc func(chunk string)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "ollama", "claude", "gemini").
	Name() string

	// Chat sends the messages and returns the complete response text.
	Chat(ctx context.Context, req *ChatRequest) (string, error)

	// ChatStream sends the messages and emits the response incrementally
	// through onChunk, returning the accumulated full text.
	ChatStream(ctx context.Context, req *ChatRequest, onChunk StreamFunc) (string, error)
}

// splitSystem separates system-role messages from the rest of the
// history for providers whose APIs carry the system prompt separately.
// Multiple system messages are joined with blank lines.
func splitSystem(messages []Message) (system string, rest []Message) {
	rest = make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content
			continue
		}
		rest = append(rest, msg)
	}
	return system, rest
}
