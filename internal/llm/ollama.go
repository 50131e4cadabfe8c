package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultOllamaURL is the base URL of a locally running Ollama server.
const DefaultOllamaURL = "http://localhost:11434"

// DefaultOllamaModel is the model used when none is configured.
const DefaultOllamaModel = "llama3.2"

// OllamaProvider implements Provider against the Ollama HTTP API.
// No SDK is involved: /api/chat takes a JSON body and answers either
// a single JSON object or a stream of JSON lines.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// OllamaOptions configures the OllamaProvider.
type OllamaOptions struct {
	// BaseURL of the Ollama server. Default: DefaultOllamaURL.
	BaseURL string

	// Model identifier. Default: DefaultOllamaModel.
	Model string

	// HTTPClient for requests. If nil, a client without an overall
	// timeout is used; generation legitimately runs for minutes and is
	// bounded by the context instead.
	HTTPClient *http.Client
}

// NewOllamaProvider creates an Ollama provider.
func NewOllamaProvider(opts OllamaOptions) *OllamaProvider {
	p := &OllamaProvider{
		baseURL: opts.BaseURL,
		model:   opts.Model,
		client:  opts.HTTPClient,
	}
	if p.baseURL == "" {
		p.baseURL = DefaultOllamaURL
	}
	if p.model == "" {
		p.model = DefaultOllamaModel
	}
	if p.client == nil {
		p.client = &http.Client{}
	}
	return p
}

// Name returns the provider identifier.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Ping reports whether the Ollama server is reachable. Used by the
// factory for provider auto-detection.
func (p *OllamaProvider) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// chatPayload is the request body for /api/chat.
type chatPayload struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatChunk is one /api/chat response object. In non-streaming mode a
// single object arrives; in streaming mode one per line.
type chatChunk struct {
	Message wireMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error"`
}

// Chat sends the messages and returns the complete response text.
func (p *OllamaProvider) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	body, err := p.do(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var chunk chatChunk
	if err := json.NewDecoder(body).Decode(&chunk); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if chunk.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chunk.Error)
	}

	return chunk.Message.Content, nil
}

// ChatStream sends the messages and emits response chunks as they
// arrive, returning the accumulated full text.
func (p *OllamaProvider) ChatStream(ctx context.Context, req *ChatRequest, onChunk StreamFunc) (string, error) {
	body, err := p.do(ctx, req, true)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var full bytes.Buffer
	dec := json.NewDecoder(body)
	for {
		var chunk chatChunk
		if err := dec.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return full.String(), fmt.Errorf("decode ollama stream: %w", err)
		}
		if chunk.Error != "" {
			return full.String(), fmt.Errorf("ollama error: %s", chunk.Error)
		}
		if chunk.Message.Content != "" {
			full.WriteString(chunk.Message.Content)
			if onChunk != nil {
				onChunk(chunk.Message.Content)
			}
		}
		if chunk.Done {
			break
		}
	}

	return full.String(), nil
}

// do issues one /api/chat request and returns the response body.
func (p *OllamaProvider) do(ctx context.Context, req *ChatRequest, stream bool) (io.ReadCloser, error) {
	payload := chatPayload{
		Model:    p.model,
		Messages: make([]wireMessage, 0, len(req.Messages)),
		Stream:   stream,
	}
	for _, msg := range req.Messages {
		payload.Messages = append(payload.Messages, wireMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama unavailable: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	return resp.Body, nil
}
