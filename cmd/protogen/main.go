package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataapis/protogen/cmd/protogen/commands"
	"github.com/dataapis/protogen/internal/version"
	"github.com/dataapis/protogen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "protogen",
	Short: "Generate Protocol classes from the array-API stub corpus",
	Long: `protogen rewrites the array-API standard's stub declarations into
structurally-typed Protocol classes.

It clones the upstream stub repository, parses each standard revision's stub
modules, converts functions and classes into runtime-checkable Protocols,
aggregates module attributes into namespace Protocols, and writes one
generated file per revision.

Examples:
  protogen fetch                   # Clone/update the stub corpus
  protogen generate                # Regenerate every standard revision
  protogen generate -r 2022.12     # One revision only
  protogen watch -r draft          # Regenerate on stub edits`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.PersistentFlags().CountP("verbose", "v",
		"Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false,
		"Emit logs as JSON")

	rootCmd.AddCommand(commands.FetchCmd)
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
