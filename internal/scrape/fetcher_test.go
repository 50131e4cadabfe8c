package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gumshoe-dev/gumshoe/internal/log"
)

func newTestFetcher() *Fetcher {
	return NewFetcherWithOptions(FetcherOptions{Logger: log.NewNoop()})
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
			t.Errorf("expected browser user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>Paris is the capital of France.</p></body></html>"))
	}))
	defer server.Close()

	text, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(text, "Paris is the capital of France.") {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestFetchNonHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for non-HTML content type")
	}
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error for 404")
	}
}

func TestFetchEmptyExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><script>nothing()</script></body></html>"))
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	if _, err := newTestFetcher().Fetch(context.Background(), "http://127.0.0.1:1/"); err == nil {
		t.Error("expected error for unreachable host")
	}
}
