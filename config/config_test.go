package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataapis/protogen/errors"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".cache", cfg.CacheDir)
	assert.Equal(t, "https://github.com/data-apis/array-api", cfg.RepoURL)
	assert.Equal(t, filepath.Join("src", "array-api"), cfg.OutputDir)
	assert.Equal(t, "_namespace.py", cfg.OutputName)
	assert.Equal(t, []string{"fft", "linalg"}, cfg.OptionalSubmodules)
	assert.Equal(t, map[string]string{"array": "Array"}, cfg.TypeVarBounds)
	assert.Equal(t, []string{"device", "dtype"}, cfg.InjectTypeVars)
	assert.Equal(t, "T", cfg.RenamePrefix)
}

func TestLoadCaches(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protogen.toml")
	content := `cache_dir = "/tmp/protogen-cache"
output_name = "generated.py"
optional_submodules = ["fft"]
rename_prefix = "TV"

[typevar_bounds]
array = "NDArray"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/protogen-cache", cfg.CacheDir)
	assert.Equal(t, "generated.py", cfg.OutputName)
	assert.Equal(t, []string{"fft"}, cfg.OptionalSubmodules)
	assert.Equal(t, "TV", cfg.RenamePrefix)
	assert.Equal(t, map[string]string{"array": "NDArray"}, cfg.TypeVarBounds)

	// Untouched keys keep their defaults.
	assert.Equal(t, filepath.Join("src", "array-api"), cfg.OutputDir)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		CacheDir:   ".cache",
		RepoURL:    "https://example.com/repo",
		OutputDir:  "out",
		OutputName: "_namespace.py",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty cache dir", func(c *Config) { c.CacheDir = "" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"empty output name", func(c *Config) { c.OutputName = "" }},
		{"output name without py suffix", func(c *Config) { c.OutputName = "namespace.txt" }},
		{"empty repo url", func(c *Config) { c.RepoURL = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}
