package commands

import (
	"github.com/spf13/cobra"

	"github.com/dataapis/protogen/config"
	"github.com/dataapis/protogen/corpus"
	"github.com/dataapis/protogen/logger"
)

// FetchCmd clones or updates the stub corpus.
var FetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Clone or update the array-API stub corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return corpus.Fetch(cmd.Context(), cfg.CacheDir, cfg.RepoURL, logger.Named("fetch"))
	},
}
