package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atriumhq/atrium/internal/app"
	"github.com/atriumhq/atrium/internal/config"
)

var ingestLabel string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Index a document into the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List indexed knowledge sources",
	RunE:  runSources,
}

var forgetCmd = &cobra.Command{
	Use:   "forget [source]",
	Short: "Remove a source from the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runForget,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestLabel, "label", "", "document category shown in citations")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(forgetCmd)
}

// setupApp loads config and assembles the application for knowledge
// commands.
func setupApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := checkProviderEnv(cfg); err != nil {
		return nil, err
	}
	return app.Setup(cmd.Context(), cfg, slog.Default())
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	path := args[0]
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	added, err := a.Index.Ingest(cmd.Context(), raw, filepath.Base(path), ingestLabel)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", path, err)
	}

	fmt.Printf("Indexed %s: %d chunks (%d total in index)\n", filepath.Base(path), added, a.Index.Len())
	return nil
}

func runSources(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	counts := a.Index.Sources()
	if len(counts) == 0 {
		fmt.Println("Knowledge base is empty.")
		return nil
	}

	fmt.Printf("Indexed sources (%d chunks total):\n", a.Index.Len())
	for _, c := range counts {
		fmt.Printf("  %-40s %d chunks\n", c.Source, c.Chunks)
	}
	return nil
}

func runForget(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	name := args[0]
	removed, err := a.Index.DeleteSource(name)
	if err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	if !removed {
		return fmt.Errorf("no indexed source named %q", name)
	}

	fmt.Printf("Removed %s (%d chunks remain)\n", name, a.Index.Len())
	return nil
}
