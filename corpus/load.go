package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/pyast"
	"github.com/dataapis/protogen/pyparse"
)

// substitutions are applied to raw stub text before parsing. The upstream
// stubs drifted between capitalized and lowercase spellings of these names
// across revisions; generation expects the lowercase ones.
var substitutions = [][2]string{
	{"Dtype", "dtype"},
	{"Device", "device"},
}

// LoadDir parses every .py file under dir into a module list.
//
// Files are visited in sorted path order so identical trees load
// identically. The module name is the file stem; when the same stem appears
// in several subdirectories the later file's body wins but the first
// occurrence keeps its position, matching a name-keyed mapping populated in
// walk order.
func LoadDir(dir string, log *zap.SugaredLogger) ([]*pyast.Module, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", dir)
	}
	sort.Strings(paths)

	order := make([]string, 0, len(paths))
	byName := make(map[string]*pyast.Module, len(paths))

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		src := Preprocess(raw)

		stem := strings.TrimSuffix(filepath.Base(path), ".py")
		m, err := pyparse.Parse(stem, src)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
		log.Debugw("loaded stub module", "module", stem, "declarations", len(m.Body))

		if _, ok := byName[stem]; !ok {
			order = append(order, stem)
		}
		byName[stem] = m
	}

	modules := make([]*pyast.Module, len(order))
	for i, name := range order {
		modules[i] = byName[name]
	}
	return modules, nil
}

// Preprocess applies the fixed raw-text substitutions to stub source.
func Preprocess(src []byte) []byte {
	s := string(src)
	for _, sub := range substitutions {
		s = strings.ReplaceAll(s, sub[0], sub[1])
	}
	return []byte(s)
}
