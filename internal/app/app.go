// Package app assembles the application: configuration, Genkit provider
// plugins, the operational store, the knowledge index, and the dispatcher.
// Commands call Setup once and share the resulting App.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/atriumhq/atrium/internal/config"
	"github.com/atriumhq/atrium/internal/dispatch"
	"github.com/atriumhq/atrium/internal/index"
	"github.com/atriumhq/atrium/internal/llm"
	"github.com/atriumhq/atrium/internal/store"
)

// App is the application container.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Genkit     *genkit.Genkit
	Embedder   ai.Embedder
	Store      *store.Store
	Index      *index.Index
	Generator  llm.Generator
	Dispatcher *dispatch.Dispatcher
}

// Close releases held resources. Safe to call on a partially built App.
func (a *App) Close() error {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return err
		}
		a.Store = nil
	}
	return nil
}
