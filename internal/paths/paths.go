package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG config home.
const AppName = "pkgmeta"

// Default file and directory names of the repository layout.
const (
	DefaultPackagesDir  = "packages"
	DefaultOutputFile   = "metadata.toml"
	DefaultMetadataFile = "metadata.toml"
	DefaultManifestFile = "package.json"
)

// ErrNotDirectory indicates a path that must be a directory is something else.
var ErrNotDirectory = errors.New("not a directory")

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory searched for a user-level pkgmeta.yaml.
// PKGMETA_CONFIG_DIR overrides the XDG location.
func ConfigDir() string {
	if dir := os.Getenv("PKGMETA_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ResolveRoot returns root as an absolute, cleaned path and checks that it
// is an existing directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving root %q", root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, "stat root %q", abs)
	}
	if !info.IsDir() {
		return "", errors.Wrapf(ErrNotDirectory, "root %q", abs)
	}
	return abs, nil
}

// Join resolves p against root unless p is already absolute.
func Join(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
