package main

import (
	"context"
	"fmt"

	"github.com/gumshoe-dev/gumshoe/internal/agent"
	"github.com/gumshoe-dev/gumshoe/internal/config"
	"github.com/gumshoe-dev/gumshoe/internal/httputil"
	"github.com/gumshoe-dev/gumshoe/internal/llm"
	"github.com/gumshoe-dev/gumshoe/internal/log"
	"github.com/gumshoe-dev/gumshoe/internal/scrape"
	"github.com/gumshoe-dev/gumshoe/internal/search"
	"github.com/gumshoe-dev/gumshoe/internal/userconfig"
)

// session bundles the assembled pipeline for one CLI invocation.
type session struct {
	manager  *agent.Manager
	provider string
}

// newSession loads user configuration and wires the full pipeline:
// provider factory, search, scraping, planning, judging, retrieval.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := userconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Flags override the config file for this invocation only.
	if flagProvider != "" {
		if err := cfg.Set("provider", flagProvider); err != nil {
			return nil, err
		}
	}
	if flagModel != "" {
		if err := cfg.Set("model", flagModel); err != nil {
			return nil, err
		}
	}

	factory, err := llm.NewFactory(ctx,
		llm.WithPrimaryProvider(cfg.Provider),
		llm.WithOllama(cfg.OllamaURL, cfg.Model),
	)
	if err != nil {
		return nil, err
	}

	logger := log.Default()
	webClient := httputil.NewClient(httputil.ClientOptions{
		Timeout: config.GetSearchTimeout(),
	})

	retriever := agent.NewRetriever(agent.RetrieverOptions{
		Planner: agent.NewPlanner(factory, logger),
		Provider: search.NewDDGProviderWithOptions(search.DDGOptions{
			Logger:     logger,
			HTTPClient: webClient,
		}),
		Judge: agent.NewJudge(factory, logger),
		Fetcher: scrape.NewFetcherWithOptions(scrape.FetcherOptions{
			Logger:     logger,
			HTTPClient: webClient,
		}),
		Logger: logger,
	})

	manager := agent.NewManager(agent.ManagerOptions{
		Provider:  factory,
		Judge:     agent.NewJudge(factory, logger),
		Retriever: retriever,
		Logger:    logger,
	})

	return &session{manager: manager, provider: cfg.Provider}, nil
}
