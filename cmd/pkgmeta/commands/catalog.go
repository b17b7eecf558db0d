package commands

import (
	"io/fs"
	"os"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/metadata"
)

// readCatalog decodes the generated file of the current repository.
func readCatalog() (*metadata.Catalog, string, error) {
	b, err := newBuilder()
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(b.Output)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, b.Output, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "%s", b.Output), "Run: pkgmeta rebuild")
	}
	if err != nil {
		return nil, b.Output, errors.NewSystemError(errors.Wrapf(err, "reading %s", b.Output), "")
	}

	c, err := metadata.Decode(data)
	if err != nil {
		return nil, b.Output, errors.NewUserError(
			errors.Wrapf(err, "decoding %s", b.Output), "Run: pkgmeta rebuild")
	}
	return c, b.Output, nil
}
