package llm

import (
	"context"
	"fmt"
	"testing"
)

// fakeProvider is a scripted Provider for factory tests.
type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(_ context.Context, _ *ChatRequest) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeProvider) ChatStream(_ context.Context, _ *ChatRequest, onChunk StreamFunc) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if onChunk != nil {
		onChunk(f.reply)
	}
	return f.reply, nil
}

func TestFactoryRoutesToPrimary(t *testing.T) {
	primary := &fakeProvider{name: "ollama", reply: "from ollama"}
	backup := &fakeProvider{name: "claude", reply: "from claude"}

	f := NewFactoryWithProviders(map[string]Provider{
		"ollama": primary,
		"claude": backup,
	}, WithPrimaryProvider("ollama"))

	text, err := f.Chat(context.Background(), &ChatRequest{})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if text != "from ollama" {
		t.Errorf("expected primary reply, got %q", text)
	}
	if backup.calls != 0 {
		t.Errorf("expected backup untouched, got %d calls", backup.calls)
	}
}

func TestFactoryFailsOverWhenBreakerOpen(t *testing.T) {
	primary := &fakeProvider{name: "ollama", err: fmt.Errorf("connection refused")}
	backup := &fakeProvider{name: "claude", reply: "from claude"}

	f := NewFactoryWithProviders(map[string]Provider{
		"ollama": primary,
		"claude": backup,
	}, WithPrimaryProvider("ollama"))

	// Three failures trip the primary's breaker.
	for i := 0; i < 3; i++ {
		if _, err := f.Chat(context.Background(), &ChatRequest{}); err == nil {
			t.Fatal("expected error from failing primary")
		}
	}

	text, err := f.Chat(context.Background(), &ChatRequest{})
	if err != nil {
		t.Fatalf("Chat after failover: %v", err)
	}
	if text != "from claude" {
		t.Errorf("expected failover reply, got %q", text)
	}
}

func TestFactoryAllBreakersOpen(t *testing.T) {
	broken := &fakeProvider{name: "ollama", err: fmt.Errorf("boom")}

	f := NewFactoryWithProviders(map[string]Provider{
		"ollama": broken,
	}, WithPrimaryProvider("ollama"))

	for i := 0; i < 3; i++ {
		_, _ = f.Chat(context.Background(), &ChatRequest{})
	}

	if _, err := f.Chat(context.Background(), &ChatRequest{}); err == nil {
		t.Fatal("expected error when all breakers are open")
	}
	if got := f.Name(); got != "none" {
		t.Errorf("expected Name() 'none' with all breakers open, got %q", got)
	}
}

func TestFactoryChatStream(t *testing.T) {
	p := &fakeProvider{name: "ollama", reply: "streamed"}

	f := NewFactoryWithProviders(map[string]Provider{"ollama": p})

	var chunks []string
	text, err := f.ChatStream(context.Background(), &ChatRequest{}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	if text != "streamed" || len(chunks) != 1 {
		t.Errorf("unexpected stream result: %q, chunks %v", text, chunks)
	}
}

func TestFactorySuccessClosesBreaker(t *testing.T) {
	p := &fakeProvider{name: "ollama", err: fmt.Errorf("boom")}

	f := NewFactoryWithProviders(map[string]Provider{"ollama": p})

	_, _ = f.Chat(context.Background(), &ChatRequest{})
	_, _ = f.Chat(context.Background(), &ChatRequest{})

	// Provider recovers before the breaker trips.
	p.err = nil
	p.reply = "ok"

	if _, err := f.Chat(context.Background(), &ChatRequest{}); err != nil {
		t.Fatalf("Chat after recovery: %v", err)
	}
	if f.breakers["ollama"].Failures() != 0 {
		t.Errorf("expected breaker reset after success, got %d failures", f.breakers["ollama"].Failures())
	}
}

func TestFactoryHasProvider(t *testing.T) {
	f := NewFactoryWithProviders(map[string]Provider{
		"ollama": &fakeProvider{name: "ollama"},
	})

	if !f.HasProvider("ollama") {
		t.Error("expected HasProvider(ollama) true")
	}
	if f.HasProvider("claude") {
		t.Error("expected HasProvider(claude) false")
	}
	if len(f.AvailableProviders()) != 1 {
		t.Errorf("expected 1 available provider, got %v", f.AvailableProviders())
	}
}
