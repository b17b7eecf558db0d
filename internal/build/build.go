// Package build runs the metadata pipeline: discover packages, load them
// concurrently, merge with the external table, sort, encode and write.
package build

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/pkgmeta/internal/config"
	"github.com/thoreinstein/pkgmeta/internal/discovery"
	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/logging"
	"github.com/thoreinstein/pkgmeta/internal/metadata"
	"github.com/thoreinstein/pkgmeta/pkg/fileutil"
)

// Builder assembles the catalog for one repository.
type Builder struct {
	Discoverer discovery.Discoverer
	Loader     *metadata.Loader
	// External supplies the curated records; defaults to metadata.External.
	External func() map[string]*metadata.Record
	// Output is the absolute path of the generated file.
	Output string
}

// New returns a Builder for the repository at root configured by cfg.
func New(cfg *config.Config, root string) *Builder {
	loader := metadata.NewLoader()
	loader.MetadataFile = cfg.MetadataFile
	loader.ManifestFile = cfg.ManifestFile
	loader.SourceBranch = cfg.SourceBranch
	loader.PackagesPath = filepath.ToSlash(filepath.Clean(cfg.PackagesDir))
	loader.Concurrency = cfg.Concurrency

	return &Builder{
		Discoverer: discovery.NewDirDiscoverer(cfg.PackagesPath(root)),
		Loader:     loader,
		External:   metadata.External,
		Output:     cfg.OutputPath(root),
	}
}

// Result summarizes a build.
type Result struct {
	Catalog *metadata.Catalog
	// Data is the encoded catalog.
	Data []byte
	// Packages is the number of discovered package directories.
	Packages int
	// Skipped counts packages without a readable metadata file.
	Skipped int
}

// Build runs the pipeline in memory. Nothing is written.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)

	dirs, err := b.Discoverer.Discover(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "discovering packages")
	}

	loaded, err := b.Loader.LoadAll(ctx, dirs)
	if err != nil {
		return nil, errors.Wrap(err, "loading package metadata")
	}

	skipped := 0
	for _, r := range loaded {
		if r == nil {
			skipped++
		}
	}

	external := metadata.External
	if b.External != nil {
		external = b.External
	}
	catalog := metadata.Aggregate(ctx, external(), loaded)

	data, err := metadata.Encode(catalog)
	if err != nil {
		return nil, errors.Wrap(err, "encoding catalog")
	}

	logger.Info("built catalog",
		"packages", len(dirs),
		"skipped", skipped,
		"records", catalog.Len())

	return &Result{
		Catalog:  catalog,
		Data:     data,
		Packages: len(dirs),
		Skipped:  skipped,
	}, nil
}

// Rebuild runs the pipeline and replaces the output file. It reports
// whether the file content changed. The write happens only after every
// package has been processed, and atomically, so a failed run leaves the
// previous file in place.
func (b *Builder) Rebuild(ctx context.Context) (*Result, bool, error) {
	res, err := b.Build(ctx)
	if err != nil {
		return nil, false, err
	}

	previous, readErr := os.ReadFile(b.Output)

	if err := fileutil.AtomicWriteFile(b.Output, res.Data, fileutil.DefaultFilePerm); err != nil {
		return nil, false, errors.Wrapf(err, "writing %s", b.Output)
	}

	changed := readErr != nil || !bytes.Equal(previous, res.Data)
	logging.FromContext(ctx).Info("wrote metadata", "path", b.Output, "changed", changed)
	return res, changed, nil
}

// readExisting returns the current output, or nil when it does not exist.
func readExisting(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}
