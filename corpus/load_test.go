package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/pyast"
)

func writeStub(t *testing.T, dir, rel, src string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func TestPreprocess(t *testing.T) {
	src := []byte("def astype(x: array, dtype: Dtype, /, *, device: Device | None = None) -> array: ...\n")
	got := string(Preprocess(src))
	assert.Equal(t,
		"def astype(x: array, dtype: dtype, /, *, device: device | None = None) -> array: ...\n",
		got)
}

func TestLoadDirSortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "set_functions.py", "def unique_all(x: array, /) -> array: ...\n")
	writeStub(t, dir, "constants.py", "e = 2.718281828459045\n")
	writeStub(t, dir, "_types.py", "array = TypeVar('array')\n")
	writeStub(t, dir, "README.md", "not a stub\n")

	modules, err := LoadDir(dir, zap.NewNop().Sugar())
	require.NoError(t, err)

	var names []string
	for _, m := range modules {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"_types", "constants", "set_functions"}, names)
}

func TestLoadDirDuplicateStems(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "fft.py", "def fft(x: array, /) -> array: ...\n")
	writeStub(t, dir, "linalg.py", "def det(x: array, /) -> array: ...\n")
	// A nested spelling of the same module shadows the flat one.
	writeStub(t, dir, "sub/fft.py", "def ifft(x: array, /) -> array: ...\n")

	modules, err := LoadDir(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Len(t, modules, 2)

	// First occurrence keeps its position, later body wins.
	assert.Equal(t, "fft", modules[0].Name)
	assert.Equal(t, "linalg", modules[1].Name)
	fn := modules[0].Body[0].(*pyast.FunctionDef)
	assert.Equal(t, "ifft", fn.Name)
}

func TestLoadDirAppliesSubstitutions(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "data_type_functions.py",
		"def astype(x: array, dtype: Dtype, /) -> array: ...\n")

	modules, err := LoadDir(dir, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Len(t, modules, 1)

	fn := modules[0].Body[0].(*pyast.FunctionDef)
	assert.Equal(t, "dtype", pyast.Unparse(fn.Args.PosOnly[1].Annotation))
}

func TestRevisionsMissingCache(t *testing.T) {
	_, err := Revisions(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFetched))
}

func TestRevisionsSorted(t *testing.T) {
	cache := t.TempDir()
	for _, rev := range []string{"draft", "2021.12", "2023.12", "2022.12"} {
		require.NoError(t, os.MkdirAll(filepath.Join(cache, filepath.FromSlash(StubRoot), rev), 0o755))
	}
	// Stray files at the stub root are not revisions.
	require.NoError(t, os.WriteFile(
		filepath.Join(cache, filepath.FromSlash(StubRoot), "__init__.py"), nil, 0o644))

	revs, err := Revisions(cache)
	require.NoError(t, err)
	assert.Equal(t, []string{"2021.12", "2022.12", "2023.12", "draft"}, revs)
}

func TestRevisionDir(t *testing.T) {
	got := RevisionDir(".cache", "2022.12")
	want := filepath.Join(".cache", "src", "array_api_stubs", "2022.12")
	assert.Equal(t, want, got)
}
