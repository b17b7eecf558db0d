// Package discovery enumerates the package directories of a monorepo.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/logging"
)

// Discoverer produces one directory path per monorepo package. The order
// of the result is unspecified.
type Discoverer interface {
	Discover(ctx context.Context) ([]string, error)
}

// DirDiscoverer treats every immediate, non-hidden subdirectory of Dir as
// a package.
type DirDiscoverer struct {
	Dir string
}

// NewDirDiscoverer returns a DirDiscoverer for dir.
func NewDirDiscoverer(dir string) *DirDiscoverer {
	return &DirDiscoverer{Dir: dir}
}

// Discover lists the package directories under d.Dir. A missing packages
// directory is an error.
func (d *DirDiscoverer) Discover(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing packages in %s", d.Dir)
	}

	logger := logging.FromContext(ctx)
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(d.Dir, entry.Name())
		if !isDir(entry, path) {
			continue
		}
		dirs = append(dirs, path)
	}

	logger.Debug("discovered packages", "dir", d.Dir, "count", len(dirs))
	return dirs, nil
}

// isDir follows symlinks so linked workspace packages are included.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Static is a Discoverer over a fixed list of directories.
type Static []string

// Discover returns the list unchanged.
func (s Static) Discover(context.Context) ([]string, error) {
	return []string(s), nil
}
