package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gumshoe-dev/gumshoe/internal/secrets"
)

// ClaudeModel is the model used when the Claude provider is selected.
const ClaudeModel = "claude-sonnet-4-5-20250929"

// claudeMaxTokens bounds a single generated reply.
const claudeMaxTokens = 4096

// ClaudeProvider implements Provider for Anthropic models.
type ClaudeProvider struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClaudeProvider creates a Claude provider. The API key is resolved
// through the secrets package (environment first, then config file).
func NewClaudeProvider() (*ClaudeProvider, error) {
	apiKey, err := secrets.Get("anthropic_api_key")
	if err != nil {
		return nil, err
	}

	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(ClaudeModel),
	}, nil
}

// Name returns the provider identifier.
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Chat sends the messages and returns the complete response text.
func (p *ClaudeProvider) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	resp, err := p.client.Messages.New(ctx, p.params(req))
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += variant.Text
		}
	}

	return text, nil
}

// ChatStream sends the messages and emits text deltas as they arrive.
func (p *ClaudeProvider) ChatStream(ctx context.Context, req *ChatRequest, onChunk StreamFunc) (string, error) {
	stream := p.client.Messages.NewStreaming(ctx, p.params(req))

	var full string
	for stream.Next() {
		event := stream.Current()
		if variant, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if delta, ok := variant.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				full += delta.Text
				if onChunk != nil {
					onChunk(delta.Text)
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return full, fmt.Errorf("anthropic stream failed: %w", err)
	}

	return full, nil
}

// params converts a ChatRequest to Anthropic message parameters.
// System-role messages become the out-of-band system prompt.
func (p *ClaudeProvider) params(req *ChatRequest) anthropic.MessageNewParams {
	system, rest := splitSystem(req.Messages)

	messages := make([]anthropic.MessageParam, 0, len(rest))
	for _, msg := range rest {
		switch msg.Role {
		case RoleUser:
			messages = append(messages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		case RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: claudeMaxTokens,
		Messages:  messages,
	}

	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	return params
}
