package metadata

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/logging"
	"github.com/thoreinstein/pkgmeta/internal/manifest"
	"github.com/thoreinstein/pkgmeta/internal/paths"
	"github.com/thoreinstein/pkgmeta/pkg/fileutil"
)

// Loader reads package directories into records.
type Loader struct {
	// MetadataFile is the per-package metadata file name.
	MetadataFile string
	// ManifestFile is the per-package manifest file name.
	ManifestFile string
	// SourceBranch is the branch used in generated source URLs.
	SourceBranch string
	// PackagesPath is the repository-relative packages directory used in
	// generated source URLs, with forward slashes.
	PackagesPath string
	// Concurrency bounds LoadAll. Zero means GOMAXPROCS.
	Concurrency int
}

// NewLoader returns a Loader with the default file names and branch.
func NewLoader() *Loader {
	return &Loader{
		MetadataFile: paths.DefaultMetadataFile,
		ManifestFile: paths.DefaultManifestFile,
		SourceBranch: "master",
		PackagesPath: paths.DefaultPackagesDir,
	}
}

// SourceURL returns the link to a package inside the monorepo:
// {homepage}/tree/{branch}/{packagesPath}/{name}.
func (l *Loader) SourceURL(homepage, name string) string {
	return strings.Join([]string{homepage, "tree", l.SourceBranch, l.PackagesPath, name}, "/")
}

// Load builds the record for the package in dir.
//
// A package whose metadata file is missing or unreadable contributes
// nothing: Load returns (nil, nil). A metadata file that is not valid TOML,
// or a missing or invalid manifest, is an error.
func (l *Loader) Load(ctx context.Context, dir string) (*Record, error) {
	logger := logging.FromContext(ctx)

	metaPath := filepath.Join(dir, l.MetadataFile)
	data, err := fileutil.ReadFileWithLimit(metaPath)
	if err != nil {
		logger.Debug("skipping package without metadata", "dir", dir, "error", err)
		return nil, nil
	}

	var fields map[string]any
	if err := toml.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", metaPath)
	}

	m, err := manifest.Read(filepath.Join(dir, l.ManifestFile))
	if err != nil {
		return nil, err
	}

	shortName, err := ShortName(m.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "deriving short name for %s", dir)
	}

	r := recordFromFields(m.Name, fields)
	r.Source = l.SourceURL(m.Homepage, m.Name)
	r.ShortDescription = m.Description
	r.ShortName = shortName
	for _, overridden := range []string{FieldSource, FieldShortDescription, FieldShortName} {
		delete(r.Extra, overridden)
	}
	if len(r.Extra) == 0 {
		r.Extra = nil
	}

	logger.Log(ctx, logging.LevelTrace, "loaded package", "key", r.Key, "dir", dir)
	return r, nil
}

// LoadAll loads every directory concurrently and waits for all of them.
// The result has one slot per input directory, in input order; skipped
// packages leave a nil slot. The first error cancels the remaining loads.
func (l *Loader) LoadAll(ctx context.Context, dirs []string) ([]*Record, error) {
	records := make([]*Record, len(dirs))

	g, groupCtx := errgroup.WithContext(ctx)
	limit := l.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, dir := range dirs {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			r, err := l.Load(groupCtx, dir)
			if err != nil {
				return err
			}
			records[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
