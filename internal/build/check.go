package build

import (
	"bytes"
	"context"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/metadata"
)

// Report describes how the file on disk differs from a fresh build.
type Report struct {
	// Path is the output file that was checked.
	Path string
	// Missing is set when the output file does not exist.
	Missing bool
	// Added lists keys present in the fresh build only.
	Added []string
	// Removed lists keys present in the file only.
	Removed []string
	// Changed maps keys present in both to a cmp diff (-file +build).
	Changed map[string]string
	// Reordered is set when both sides hold the same keys in a different order.
	Reordered bool
	// FormatOnly is set when the content is equal but the bytes differ.
	FormatOnly bool
}

// Stale reports whether the output file must be regenerated.
func (r *Report) Stale() bool {
	return r.Missing || len(r.Added) > 0 || len(r.Removed) > 0 ||
		len(r.Changed) > 0 || r.Reordered || r.FormatOnly
}

// ChangedKeys returns the keys of Changed in sorted order.
func (r *Report) ChangedKeys() []string {
	keys := make([]string, 0, len(r.Changed))
	for k := range r.Changed {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Check builds the catalog in memory and compares it with the output file.
func (b *Builder) Check(ctx context.Context) (*Report, error) {
	res, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Path: b.Output, Changed: make(map[string]string)}

	existing, err := readExisting(b.Output)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		report.Missing = true
		report.Added = res.Catalog.Keys()
		return report, nil
	}

	onDisk, err := metadata.Decode(existing)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", b.Output)
	}

	compareCatalogs(report, onDisk, res.Catalog)
	if !report.Stale() && !bytes.Equal(existing, res.Data) {
		report.FormatOnly = true
	}
	return report, nil
}

func compareCatalogs(report *Report, onDisk, fresh *metadata.Catalog) {
	for _, key := range fresh.Keys() {
		want, _ := fresh.Get(key)
		got, ok := onDisk.Get(key)
		if !ok {
			report.Added = append(report.Added, key)
			continue
		}
		if diff := cmp.Diff(got, want); diff != "" {
			report.Changed[key] = diff
		}
	}
	for _, key := range onDisk.Keys() {
		if _, ok := fresh.Get(key); !ok {
			report.Removed = append(report.Removed, key)
		}
	}
	if len(report.Added) == 0 && len(report.Removed) == 0 {
		report.Reordered = !slices.Equal(onDisk.Keys(), fresh.Keys())
	}
}
