package llm

import (
	"context"
	"fmt"

	"github.com/gumshoe-dev/gumshoe/internal/secrets"
)

// Factory creates and manages LLM providers with circuit breakers.
// It auto-detects available backends (a reachable Ollama server, API
// keys in the environment) and falls back to another provider when the
// preferred one is unavailable.
type Factory struct {
	providers map[string]Provider
	breakers  map[string]*CircuitBreaker
	primary   string
}

// factoryOptions holds configuration for creating a factory.
type factoryOptions struct {
	primary     string
	ollamaURL   string
	ollamaModel string
}

// FactoryOption configures a Factory.
type FactoryOption func(*factoryOptions)

// WithPrimaryProvider sets the preferred provider name.
// If the primary provider is unavailable, the factory falls back to others.
func WithPrimaryProvider(name string) FactoryOption {
	return func(o *factoryOptions) {
		if name != "" {
			o.primary = name
		}
	}
}

// WithOllama sets the Ollama server URL and model.
func WithOllama(baseURL, model string) FactoryOption {
	return func(o *factoryOptions) {
		o.ollamaURL = baseURL
		o.ollamaModel = model
	}
}

// NewFactory creates a factory with available providers:
//   - Ollama: available if the server answers at its base URL
//   - Claude: available if the anthropic_api_key secret resolves
//   - Gemini: available if the google_api_key secret resolves
//
// Returns an error if no providers are available.
func NewFactory(ctx context.Context, opts ...FactoryOption) (*Factory, error) {
	o := &factoryOptions{
		primary: "ollama",
	}
	for _, opt := range opts {
		opt(o)
	}

	f := &Factory{
		providers: make(map[string]Provider),
		breakers:  make(map[string]*CircuitBreaker),
		primary:   o.primary,
	}

	ollama := NewOllamaProvider(OllamaOptions{
		BaseURL: o.ollamaURL,
		Model:   o.ollamaModel,
	})
	if ollama.Ping(ctx) {
		f.providers["ollama"] = ollama
		f.breakers["ollama"] = NewCircuitBreaker("ollama")
	}

	if secrets.IsSet("anthropic_api_key") {
		provider, err := NewClaudeProvider()
		if err == nil {
			f.providers["claude"] = provider
			f.breakers["claude"] = NewCircuitBreaker("claude")
		}
	}

	if secrets.IsSet("google_api_key") {
		provider, err := NewGeminiProvider(ctx)
		if err == nil {
			f.providers["gemini"] = provider
			f.breakers["gemini"] = NewCircuitBreaker("gemini")
		}
	}

	if len(f.providers) == 0 {
		return nil, fmt.Errorf("no LLM providers available: start an Ollama server or set ANTHROPIC_API_KEY / GOOGLE_API_KEY")
	}

	return f, nil
}

// NewFactoryWithProviders creates a factory with the given providers.
// This is useful for testing with fake providers.
func NewFactoryWithProviders(providers map[string]Provider, opts ...FactoryOption) *Factory {
	o := &factoryOptions{
		primary: "ollama",
	}
	for _, opt := range opts {
		opt(o)
	}

	f := &Factory{
		providers: make(map[string]Provider),
		breakers:  make(map[string]*CircuitBreaker),
		primary:   o.primary,
	}

	for name, provider := range providers {
		f.providers[name] = provider
		f.breakers[name] = NewCircuitBreaker(name)
	}

	return f
}

// GetProvider returns an available provider, respecting circuit breaker state.
// Returns the primary provider if available and its breaker allows requests.
// Otherwise, falls back to any available provider with an open breaker.
// Returns an error if no providers are available.
func (f *Factory) GetProvider() (Provider, error) {
	if provider, ok := f.providers[f.primary]; ok {
		if breaker := f.breakers[f.primary]; breaker != nil && breaker.Allow() {
			return provider, nil
		}
	}

	for name, provider := range f.providers {
		if name == f.primary {
			continue // Already tried primary
		}
		if breaker := f.breakers[name]; breaker != nil && breaker.Allow() {
			return provider, nil
		}
	}

	return nil, fmt.Errorf("no LLM providers available: all circuit breakers are open")
}

// ReportSuccess records a successful operation for the specified provider.
// This resets the circuit breaker failure count and closes the breaker.
func (f *Factory) ReportSuccess(providerName string) {
	if breaker, ok := f.breakers[providerName]; ok {
		breaker.RecordSuccess()
	}
}

// ReportFailure records a failed operation for the specified provider.
// This increments the circuit breaker failure count and may trip the breaker.
func (f *Factory) ReportFailure(providerName string) {
	if breaker, ok := f.breakers[providerName]; ok {
		breaker.RecordFailure()
	}
}

// AvailableProviders returns names of providers whose circuit breakers
// are closed or half-open (i.e., allowing requests).
func (f *Factory) AvailableProviders() []string {
	var available []string
	for name, breaker := range f.breakers {
		if breaker.Allow() {
			available = append(available, name)
		}
	}
	return available
}

// HasProvider returns true if the factory has the specified provider.
func (f *Factory) HasProvider(name string) bool {
	_, ok := f.providers[name]
	return ok
}

// Name returns the name of the provider the factory would route to now,
// or "none" if every breaker is open.
func (f *Factory) Name() string {
	provider, err := f.GetProvider()
	if err != nil {
		return "none"
	}
	return provider.Name()
}

// Chat routes a single-turn call through an available provider and
// records the outcome with its circuit breaker. The Factory therefore
// satisfies the Provider interface itself.
func (f *Factory) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	provider, err := f.GetProvider()
	if err != nil {
		return "", err
	}

	text, err := provider.Chat(ctx, req)
	f.report(provider.Name(), err)
	return text, err
}

// ChatStream routes a streamed call through an available provider and
// records the outcome with its circuit breaker.
func (f *Factory) ChatStream(ctx context.Context, req *ChatRequest, onChunk StreamFunc) (string, error) {
	provider, err := f.GetProvider()
	if err != nil {
		return "", err
	}

	text, err := provider.ChatStream(ctx, req, onChunk)
	f.report(provider.Name(), err)
	return text, err
}

func (f *Factory) report(providerName string, err error) {
	if err != nil {
		f.ReportFailure(providerName)
		return
	}
	f.ReportSuccess(providerName)
}
