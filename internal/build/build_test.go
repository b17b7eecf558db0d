package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/pkgmeta/internal/config"
	"github.com/thoreinstein/pkgmeta/internal/logging"
	"github.com/thoreinstein/pkgmeta/internal/metadata"
)

// fixtureRepo lays out a small monorepo under a temp dir:
// two packages with metadata, one without.
func fixtureRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writePkg := func(name, meta string) {
		dir := filepath.Join(root, "packages", name)
		require.NoError(t, os.MkdirAll(dir, 0700))
		manifest := fmt.Sprintf(`{"name": %q, "description": "About %s", "homepage": "https://github.com/cssnano/cssnano"}`, name, name)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0600))
		if meta != "" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.toml"), []byte(meta), 0600))
		}
	}

	writePkg("postcss-merge-longhand", `longDescription = "Merge longhand properties into shorthand."`)
	writePkg("cssnano-util-get-arguments", `inputExample = """
a { margin: 0 }
"""`)
	writePkg("postcss-no-metadata", "")

	return root
}

func newBuilder(t *testing.T, root string) *Builder {
	t.Helper()
	return New(config.Default(), root)
}

func TestBuild(t *testing.T) {
	root := fixtureRepo(t)
	ctx := logging.NewContext(t.Context(), logging.ForTest(t))

	res, err := newBuilder(t, root).Build(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Packages)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{
		"autoprefixer",
		"cssnano-util-get-arguments",
		"postcss-calc",
		"postcss-merge-longhand",
	}, res.Catalog.Keys())

	r, ok := res.Catalog.Get("cssnano-util-get-arguments")
	require.True(t, ok)
	assert.Equal(t, "getArguments", r.ShortName)
	assert.Equal(t, "https://github.com/cssnano/cssnano/tree/master/packages/cssnano-util-get-arguments", r.Source)

	_, ok = res.Catalog.Get("postcss-no-metadata")
	assert.False(t, ok, "package without metadata must not appear")
	assert.NotContains(t, string(res.Data), "postcss-no-metadata")
}

func TestRebuild_WritesSortedOutput(t *testing.T) {
	root := fixtureRepo(t)
	b := newBuilder(t, root)

	_, changed, err := b.Rebuild(t.Context())
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(filepath.Join(root, "metadata.toml"))
	require.NoError(t, err)

	out := string(data)
	positions := []int{
		strings.Index(out, "[autoprefixer]"),
		strings.Index(out, "[cssnano-util-get-arguments]"),
		strings.Index(out, "[postcss-calc]"),
		strings.Index(out, "[postcss-merge-longhand]"),
	}
	for i, p := range positions {
		require.GreaterOrEqual(t, p, 0, "table %d missing from output", i)
		if i > 0 {
			assert.Less(t, positions[i-1], p, "tables out of order")
		}
	}

	decoded, err := metadata.Decode(data)
	require.NoError(t, err)
	r, _ := decoded.Get("postcss-merge-longhand")
	assert.Equal(t, "Merge longhand properties into shorthand.", r.LongDescription)
	assert.Equal(t, "About postcss-merge-longhand", r.ShortDescription)
	assert.Equal(t, "mergeLonghand", r.ShortName)
}

func TestRebuild_Idempotent(t *testing.T) {
	root := fixtureRepo(t)
	b := newBuilder(t, root)
	out := filepath.Join(root, "metadata.toml")

	_, _, err := b.Rebuild(t.Context())
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, changed, err := b.Rebuild(t.Context())
	require.NoError(t, err)
	assert.False(t, changed)

	second, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRebuild_OverwritesPreviousContent(t *testing.T) {
	root := fixtureRepo(t)
	out := filepath.Join(root, "metadata.toml")
	require.NoError(t, os.WriteFile(out, []byte("[stale]\nshortName = 'stale'\n"), 0600))

	_, changed, err := newBuilder(t, root).Rebuild(t.Context())
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestRebuild_FailureLeavesOutputUntouched(t *testing.T) {
	root := fixtureRepo(t)
	out := filepath.Join(root, "metadata.toml")
	original := []byte("[previous]\nshortName = 'previous'\n")
	require.NoError(t, os.WriteFile(out, original, 0600))

	// A package with metadata but no manifest is fatal.
	broken := filepath.Join(root, "packages", "postcss-broken")
	require.NoError(t, os.MkdirAll(broken, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(broken, "metadata.toml"), []byte(`longDescription = "x"`), 0600))

	_, _, err := newBuilder(t, root).Rebuild(t.Context())
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestBuild_MissingPackagesDir(t *testing.T) {
	_, err := newBuilder(t, t.TempDir()).Build(t.Context())
	assert.Error(t, err)
}

func TestNew_UsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PackagesDir = "plugins"
	cfg.Output = "docs/metadata.toml"
	cfg.SourceBranch = "main"
	cfg.Concurrency = 2

	root := filepath.FromSlash("/repo")
	b := New(cfg, root)

	assert.Equal(t, filepath.Join(root, "docs", "metadata.toml"), b.Output)
	assert.Equal(t, "plugins", b.Loader.PackagesPath)
	assert.Equal(t, "main", b.Loader.SourceBranch)
	assert.Equal(t, 2, b.Loader.Concurrency)
}
