// Package cmd provides the CLI commands for atrium.
//
// Commands:
//   - serve: HTTP API server
//   - ask: one-shot question from the terminal
//   - ingest, sources, forget: knowledge base management
//   - version: build and configuration info
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atriumhq/atrium/internal/config"
	"github.com/atriumhq/atrium/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "atrium",
	Short: "Atrium - the enterprise assistant for tickets, HR, support, and data",
	Long: `Atrium answers workplace questions from one place: ticket tracking,
HR policies and leave, the IT support desk, and warehouse analytics.

Deterministic queries are answered straight from the operational store;
open-ended questions are grounded in the indexed knowledge base and
completed by the configured model provider.`,
	SilenceUsage: true,
}

// Execute is the entry point for the atrium CLI.
func Execute() error {
	slog.SetDefault(initLogger())
	return rootCmd.Execute()
}

// initLogger builds the process logger. DEBUG in the environment lowers
// the level to debug.
func initLogger() log.Logger {
	cfg := log.Config{Level: slog.LevelInfo}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	return log.New(cfg)
}

// checkProviderEnv verifies the configured provider can authenticate.
// Gemini needs an API key; Ollama runs against a local server without one.
func checkProviderEnv(cfg *config.Config) error {
	if cfg.Provider != config.ProviderGemini {
		return nil
	}
	if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != "" {
		return nil
	}

	fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable not set")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "The gemini provider requires an API key:")
	fmt.Fprintln(os.Stderr, "  export GEMINI_API_KEY=your-api-key")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Or point atrium at a local Ollama instead:")
	fmt.Fprintln(os.Stderr, "  export ATRIUM_PROVIDER=ollama")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Get an API key at: https://ai.google.dev/")

	return fmt.Errorf("GEMINI_API_KEY not set")
}
