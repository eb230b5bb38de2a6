// Package corpus acquires and loads the array-API stub corpus.
//
// Acquisition clones the upstream repository with go-git; loading walks one
// standard revision's stub directory, applies the fixed raw-text
// substitutions, and parses each file into a pyast module.
package corpus

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/dataapis/protogen/errors"
)

// DefaultRepoURL is the upstream array-API standard repository.
const DefaultRepoURL = "https://github.com/data-apis/array-api"

// StubRoot is the stub tree's path inside the upstream repository.
const StubRoot = "src/array_api_stubs"

// Fetch clones the stub repository into cacheDir, or fast-forwards an
// existing clone.
func Fetch(ctx context.Context, cacheDir, url string, log *zap.SugaredLogger) error {
	if _, err := os.Stat(filepath.Join(cacheDir, ".git")); err == nil {
		return pull(ctx, cacheDir, log)
	}

	log.Infow("cloning stub corpus", "url", url, "dir", cacheDir)
	_, err := git.PlainCloneContext(ctx, cacheDir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		return errors.Wrapf(err, "clone %s", url)
	}
	return nil
}

func pull(ctx context.Context, cacheDir string, log *zap.SugaredLogger) error {
	repo, err := git.PlainOpen(cacheDir)
	if err != nil {
		return errors.Wrapf(err, "open cached clone %s", cacheDir)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "worktree")
	}
	log.Infow("updating stub corpus", "dir", cacheDir)
	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin", SingleBranch: true})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		log.Debugw("stub corpus already up to date")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "pull")
	}
	return nil
}

// Revisions lists the standard revision directories present in the cached
// corpus, sorted.
func Revisions(cacheDir string) ([]string, error) {
	root := filepath.Join(cacheDir, filepath.FromSlash(StubRoot))
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFetched, "%s", root)
		}
		return nil, errors.Wrapf(err, "read %s", root)
	}
	var revs []string
	for _, e := range entries {
		if e.IsDir() {
			revs = append(revs, e.Name())
		}
	}
	sort.Strings(revs)
	return revs, nil
}

// RevisionDir returns the stub directory for one standard revision.
func RevisionDir(cacheDir, revision string) string {
	return filepath.Join(cacheDir, filepath.FromSlash(StubRoot), revision)
}
