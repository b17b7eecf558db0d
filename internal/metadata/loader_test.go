package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/pkgmeta/internal/logging"
)

// writePackage creates dir/name with the given metadata and manifest.
// An empty string skips the corresponding file.
func writePackage(t *testing.T, dir, name, metadataTOML, manifestJSON string) string {
	t.Helper()
	pkgDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(pkgDir, 0700))
	if metadataTOML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "metadata.toml"), []byte(metadataTOML), 0600))
	}
	if manifestJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(manifestJSON), 0600))
	}
	return pkgDir
}

func manifestFor(name string) string {
	return fmt.Sprintf(`{"name": %q, "description": "Description of %s", "homepage": "https://github.com/cssnano/cssnano"}`, name, name)
}

func TestLoader_Load_MergesManifest(t *testing.T) {
	dir := writePackage(t, t.TempDir(), "postcss-foo",
		`longDescription = "X"`,
		`{"name": "postcss-foo", "description": "Y", "homepage": "https://example.com/repo"}`)

	r, err := NewLoader().Load(logging.NewContext(t.Context(), logging.ForTest(t)), dir)
	require.NoError(t, err)

	assert.Equal(t, &Record{
		Key:              "postcss-foo",
		LongDescription:  "X",
		ShortDescription: "Y",
		ShortName:        "foo",
		Source:           "https://example.com/repo/tree/master/packages/postcss-foo",
	}, r)
}

func TestLoader_Load_ManifestOverridesMetadata(t *testing.T) {
	dir := writePackage(t, t.TempDir(), "postcss-foo", `
shortName = "custom"
shortDescription = "from metadata"
source = 12
inputExample = """
a { color: red }
"""
keywords = ["colors"]
`, manifestFor("postcss-foo"))

	r, err := NewLoader().Load(t.Context(), dir)
	require.NoError(t, err)

	assert.Equal(t, "foo", r.ShortName)
	assert.Equal(t, "Description of postcss-foo", r.ShortDescription)
	assert.Equal(t, "https://github.com/cssnano/cssnano/tree/master/packages/postcss-foo", r.Source)
	assert.Equal(t, "a { color: red }\n", r.InputExample)
	assert.Equal(t, map[string]any{"keywords": []any{"colors"}}, r.Extra)
}

func TestLoader_Load_SkipsMissingMetadata(t *testing.T) {
	dir := writePackage(t, t.TempDir(), "postcss-bar", "", manifestFor("postcss-bar"))

	r, err := NewLoader().Load(t.Context(), dir)
	assert.NoError(t, err)
	assert.Nil(t, r)
}

func TestLoader_Load_SkipsUnreadableMetadata(t *testing.T) {
	dir := writePackage(t, t.TempDir(), "postcss-bar", "", manifestFor("postcss-bar"))
	// A directory in place of the file cannot be read.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "metadata.toml"), 0700))

	r, err := NewLoader().Load(t.Context(), dir)
	assert.NoError(t, err)
	assert.Nil(t, r)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		manifest string
	}{
		{"malformed metadata", "longDescription = ", manifestFor("postcss-foo")},
		{"missing manifest", `longDescription = "X"`, ""},
		{"malformed manifest", `longDescription = "X"`, `{"name": `},
		{"manifest without name", `longDescription = "X"`, `{"description": "Y"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writePackage(t, t.TempDir(), "postcss-foo", tt.metadata, tt.manifest)
			r, err := NewLoader().Load(t.Context(), dir)
			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}

func TestLoader_SourceURL(t *testing.T) {
	l := NewLoader()
	l.SourceBranch = "main"
	l.PackagesPath = "plugins"
	assert.Equal(t, "https://example.com/repo/tree/main/plugins/postcss-foo", l.SourceURL("https://example.com/repo", "postcss-foo"))
}

func TestLoader_LoadAll(t *testing.T) {
	root := t.TempDir()
	var dirs []string
	for i := range 20 {
		name := fmt.Sprintf("postcss-plugin-%02d", i)
		meta := fmt.Sprintf("longDescription = %q", name)
		if i%5 == 0 {
			meta = "" // every fifth package has no metadata
		}
		dirs = append(dirs, writePackage(t, root, name, meta, manifestFor(name)))
	}

	l := NewLoader()
	l.Concurrency = 3
	records, err := l.LoadAll(t.Context(), dirs)
	require.NoError(t, err)
	require.Len(t, records, len(dirs))

	loaded := 0
	for i, r := range records {
		if i%5 == 0 {
			assert.Nil(t, r, "package %d should be skipped", i)
			continue
		}
		require.NotNil(t, r)
		assert.Equal(t, filepath.Base(dirs[i]), r.Key)
		assert.Equal(t, r.Key, r.LongDescription)
		loaded++
	}
	assert.Equal(t, 16, loaded)
}

func TestLoader_LoadAll_FirstErrorAborts(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		writePackage(t, root, "postcss-ok", `longDescription = "ok"`, manifestFor("postcss-ok")),
		writePackage(t, root, "postcss-broken", `longDescription = "ok"`, ""),
	}

	records, err := NewLoader().LoadAll(t.Context(), dirs)
	assert.Error(t, err)
	assert.Nil(t, records)
}

func TestLoader_LoadAll_Empty(t *testing.T) {
	records, err := NewLoader().LoadAll(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
