package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atriumhq/atrium/internal/app"
	"github.com/atriumhq/atrium/internal/config"
)

var askUser string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askUser, "user", "", "act as this employee for \"my\" queries and created records")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := checkProviderEnv(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := app.Setup(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = a.Close() }()

	question := strings.Join(args, " ")
	env := a.Dispatcher.Process(ctx, question, nil, askUser)

	fmt.Println(env.Answer)
	if len(env.Sources) > 0 {
		fmt.Println()
		fmt.Printf("Sources (%s):\n", env.Label)
		for _, src := range env.Sources {
			fmt.Printf("  - %s\n", src.Metadata["source"])
		}
	}
	return nil
}
