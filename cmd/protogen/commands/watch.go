package commands

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dataapis/protogen/config"
	"github.com/dataapis/protogen/corpus"
	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/logger"
)

var watchRevision string

// WatchCmd regenerates a revision whenever its stub files change.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate a revision when its stub files change",
	Long: `Watch one standard revision's stub directory and regenerate its
Protocol namespace whenever a file changes. Useful while editing draft
stubs. Requires a fetched corpus; press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().StringVarP(&watchRevision, "revision", "r", "draft",
		"Standard revision to watch")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Named("watch")

	dir := corpus.RevisionDir(cfg.CacheDir, watchRevision)
	dirs, err := subdirectories(dir)
	if err != nil {
		return errors.WithHint(err, "run 'protogen fetch' first")
	}

	watcher, err := config.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	regenerate := func() {
		if err := generateOne(cfg, watchRevision, log); err != nil {
			log.Errorw("regeneration failed", "revision", watchRevision, "error", err)
		}
	}
	watcher.OnChange(regenerate)
	watcher.Start()

	// Produce an initial build before waiting for edits.
	regenerate()
	log.Infow("watching stub directory", "dir", dir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-cmd.Context().Done():
	}
	return nil
}

func subdirectories(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return dirs, nil
}
