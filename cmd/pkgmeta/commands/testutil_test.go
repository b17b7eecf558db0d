package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/pkgmeta/internal/config"
)

// useRepo points the commands at root with the default configuration and
// restores the package state when the test ends.
func useRepo(t *testing.T, root string) {
	t.Helper()

	origRoot, origCfg, origErr := rootFlag, loadedConfig, configLoadErr
	origQuiet, origNoColor := quiet, color.NoColor
	t.Cleanup(func() {
		rootFlag, loadedConfig, configLoadErr = origRoot, origCfg, origErr
		quiet, color.NoColor = origQuiet, origNoColor
	})

	rootFlag = root
	loadedConfig = config.Default()
	configLoadErr = nil
	quiet = false
	color.NoColor = true
}

// writePackage creates packages/<name> with a manifest and, when meta is
// not empty, a metadata.toml.
func writePackage(t *testing.T, root, name, meta string) {
	t.Helper()

	dir := filepath.Join(root, "packages", name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	manifest := fmt.Sprintf(`{"name": %q, "description": "Description of %s", "homepage": "https://github.com/cssnano/cssnano"}`, name, name)
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0600); err != nil {
		t.Fatal(err)
	}
	if meta == "" {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "metadata.toml"), []byte(meta), 0600); err != nil {
		t.Fatal(err)
	}
}

// newRepo returns a repository root holding two packages with metadata
// and one without.
func newRepo(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writePackage(t, root, "postcss-discard-comments", `longDescription = "Discard comments in your CSS files."`)
	writePackage(t, root, "postcss-minify-selectors", `longDescription = "Minify selectors."`)
	writePackage(t, root, "postcss-internal-only", "")
	return root
}
