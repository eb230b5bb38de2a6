package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataapis/protogen/config"
	"github.com/dataapis/protogen/corpus"
	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/gen"
	"github.com/dataapis/protogen/logger"
	"github.com/dataapis/protogen/pyast"
)

var (
	generateRevision string
	generateOffline  bool
	generateOutput   string
)

// GenerateCmd regenerates the Protocol namespace files.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Protocol classes for each standard revision",
	Long: `Generate Protocol classes from the cached stub corpus.

Unless --offline is given, the corpus is cloned or updated first. Each
standard revision under src/array_api_stubs/ produces one generated file in
the output directory.`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateRevision, "revision", "r", "",
		"Generate a single standard revision (default: all)")
	GenerateCmd.Flags().BoolVar(&generateOffline, "offline", false,
		"Skip cloning/updating the stub corpus")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"Output directory (default: from configuration)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if generateOutput != "" {
		cfg.OutputDir = generateOutput
	}
	log := logger.Named("generate")

	if !generateOffline {
		if err := corpus.Fetch(cmd.Context(), cfg.CacheDir, cfg.RepoURL, log); err != nil {
			return err
		}
	}

	revisions, err := resolveRevisions(cfg, generateRevision)
	if err != nil {
		return err
	}
	return generateRevisions(cfg, revisions, log)
}

func resolveRevisions(cfg *config.Config, requested string) ([]string, error) {
	if requested != "" {
		return []string{requested}, nil
	}
	revisions, err := corpus.Revisions(cfg.CacheDir)
	if err != nil {
		return nil, errors.WithHint(err, "run 'protogen fetch' first")
	}
	if len(revisions) == 0 {
		return nil, errors.Wrap(errors.ErrNotFetched, "no standard revisions found")
	}
	return revisions, nil
}

func generateRevisions(cfg *config.Config, revisions []string, log *zap.SugaredLogger) error {
	for _, rev := range revisions {
		if err := generateOne(cfg, rev, log); err != nil {
			return errors.Wrapf(err, "revision %s", rev)
		}
	}
	return nil
}

func generateOne(cfg *config.Config, revision string, log *zap.SugaredLogger) error {
	modules, err := corpus.LoadDir(corpus.RevisionDir(cfg.CacheDir, revision), log)
	if err != nil {
		return err
	}

	tree, err := gen.Generate(modules, optionsFromConfig(cfg, log))
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.OutputDir, revision, cfg.OutputName)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(outPath))
	}
	if err := os.WriteFile(outPath, []byte(pyast.Render(tree)), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}

	log.Infow("generated namespace",
		"revision", revision,
		"modules", len(modules),
		"out", outPath)
	return nil
}

func optionsFromConfig(cfg *config.Config, log *zap.SugaredLogger) gen.Options {
	opts := gen.DefaultOptions()
	opts.OptionalSubmodules = cfg.OptionalSubmodules
	opts.RenamePrefix = cfg.RenamePrefix
	opts.Registry = gen.RegistryOptions{
		Bounds: cfg.TypeVarBounds,
		Inject: cfg.InjectTypeVars,
	}
	opts.Logger = log
	return opts
}
