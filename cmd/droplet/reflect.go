package main

import (
	"fmt"

	"droplet/internal/breath"
	"droplet/internal/logging"
	"droplet/internal/reflection"

	"github.com/spf13/cobra"
)

// reflectCmd fetches a single reflection
var reflectCmd = &cobra.Command{
	Use:   "reflect [state]",
	Short: "Print one reflection for a state (ANXIOUS, TRANSITION or CALM)",
	Long: `Requests one reflection exactly as the exercise does and prints it.
If generation fails the fallback phrase is printed.

Example:
  droplet reflect calm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReflect,
}

func runReflect(cmd *cobra.Command, args []string) error {
	state := breath.Anxious
	if len(args) == 1 {
		s, err := breath.ParseState(args[0])
		if err != nil {
			return err
		}
		state = s
	}

	ctx := cmd.Context()
	gen := reflection.NewGenAIGenerator(ctx, cfg.Reflection.APIKey)
	f := reflection.NewFetcher(gen, settingsFrom(cfg), cliLogs.For(logging.CategoryAPI))

	fmt.Fprintln(cmd.OutOrStdout(), f.Fetch(ctx, state))
	return nil
}
