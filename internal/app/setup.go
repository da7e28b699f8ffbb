package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"

	"github.com/atriumhq/atrium/internal/config"
	"github.com/atriumhq/atrium/internal/dispatch"
	"github.com/atriumhq/atrium/internal/index"
	"github.com/atriumhq/atrium/internal/llm"
	"github.com/atriumhq/atrium/internal/store"
)

// Setup creates and initializes the application. On error everything
// already initialized is released; on success the caller owns Close.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	g, embedder, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g
	a.Embedder = embedder

	st, err := store.Open(cfg.SQLitePath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	a.Store = st

	a.Index = index.New(ctx, embedder, index.NewFileStorage(cfg.IndexPath), logger, index.Options{
		TopK:           cfg.TopK,
		RelevanceFloor: cfg.RelevanceFloor,
		Chunker: index.Chunker{
			Words:    cfg.ChunkWords,
			Overlap:  cfg.ChunkOverlap,
			MinChars: cfg.MinChunkChars,
		},
	})

	a.Generator = llm.NewClient(g, cfg, logger)
	a.Dispatcher = dispatch.New(st, a.Index, a.Generator, cfg, logger)

	return a, nil
}

// provideGenkit initializes Genkit with the configured provider plugin and
// returns the embedder it registers. Ollama needs explicit model and
// embedder registration; Gemini discovers models itself.
func provideGenkit(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*genkit.Genkit, ai.Embedder, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		plugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g := genkit.Init(ctx, genkit.WithPlugins(plugin))
		if g == nil {
			return nil, nil, errors.New("initializing genkit with ollama provider")
		}
		plugin.DefineModel(g, ollama.ModelDefinition{Name: cfg.ModelName, Type: "chat"}, nil)
		plugin.DefineEmbedder(g, cfg.OllamaHost, cfg.EmbedderModel, nil)
		logger.Info("initialized genkit",
			"provider", cfg.Provider, "model", cfg.ModelName, "host", cfg.OllamaHost)
		return g, ollama.Embedder(g, cfg.OllamaHost), nil

	default: // gemini
		g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, nil, errors.New("initializing genkit with gemini provider")
		}
		embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
		if embedder == nil {
			return nil, nil, fmt.Errorf("embedder %q not found for provider %q",
				cfg.EmbedderModel, cfg.Provider)
		}
		logger.Info("initialized genkit", "provider", cfg.Provider, "model", cfg.ModelName)
		return g, embedder, nil
	}
}
