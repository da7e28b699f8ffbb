package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atriumhq/atrium/internal/config"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "development"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and configuration information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	fmt.Printf("Atrium %s\n", AppVersion)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println("Configuration:")
	fmt.Printf("  Provider: %s\n", cfg.Provider)
	fmt.Printf("  Model: %s\n", cfg.ModelName)
	fmt.Printf("  Embedder: %s\n", cfg.EmbedderModel)
	fmt.Printf("  Database: %s\n", cfg.SQLitePath)
	fmt.Printf("  Index: %s\n", cfg.IndexPath)

	key := os.Getenv("GEMINI_API_KEY")
	switch {
	case len(key) >= 8:
		fmt.Printf("  GEMINI_API_KEY: %s...%s (configured)\n", key[:4], key[len(key)-4:])
	case key != "":
		fmt.Println("  GEMINI_API_KEY: configured")
	default:
		fmt.Println("  GEMINI_API_KEY: not set")
	}

	return nil
}
