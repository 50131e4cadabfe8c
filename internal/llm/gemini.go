package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/gumshoe-dev/gumshoe/internal/secrets"
)

// GeminiModel is the model used when the Gemini provider is selected.
const GeminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider using the Google AI API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider using the Google AI API. The API
// key is resolved through the secrets package (environment first, then
// config file).
func NewGeminiProvider(ctx context.Context) (*GeminiProvider, error) {
	apiKey, err := secrets.Get("google_api_key")
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  GeminiModel,
	}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Close releases the Gemini client resources.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Chat sends the messages and returns the complete response text.
func (p *GeminiProvider) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	model, parts := p.prepare(req)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	return responseText(resp), nil
}

// ChatStream sends the messages and emits text chunks as they arrive.
func (p *GeminiProvider) ChatStream(ctx context.Context, req *ChatRequest, onChunk StreamFunc) (string, error) {
	model, parts := p.prepare(req)

	iter := model.GenerateContentStream(ctx, parts...)

	var full string
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return full, fmt.Errorf("gemini stream failed: %w", err)
		}

		chunk := responseText(resp)
		if chunk != "" {
			full += chunk
			if onChunk != nil {
				onChunk(chunk)
			}
		}
	}

	return full, nil
}

// prepare builds the generative model and the flattened content parts.
// System-role messages become the model's system instruction.
func (p *GeminiProvider) prepare(req *ChatRequest) (*genai.GenerativeModel, []genai.Part) {
	model := p.client.GenerativeModel(p.model)

	system, rest := splitSystem(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	parts := make([]genai.Part, 0, len(rest))
	for _, msg := range rest {
		if msg.Content != "" {
			parts = append(parts, genai.Text(msg.Content))
		}
	}

	return model, parts
}

// responseText extracts the text from a Gemini response.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var text string
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}

	return text
}
