// Package fileutil provides file system helpers: atomic writes and
// size-limited reads.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

// DefaultFilePerm is the mode given to generated files.
const DefaultFilePerm os.FileMode = 0o644

// AtomicWriteFile writes data to path using a temp file in the same
// directory followed by a rename, so readers see either the previous
// content or the new content, never a partial file.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pkgmeta-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	committed = true

	return nil
}
