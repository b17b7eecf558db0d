// Package metadata builds the aggregated package catalog written to the
// repository's metadata.toml.
//
// The catalog is assembled from two sources: a fixed table of curated
// entries for packages that live outside the monorepo ([External]) and one
// [Record] per monorepo package, produced by a [Loader] from the package's
// own metadata.toml merged with its package.json. [Aggregate] merges both
// and orders the entries by key; [Encode] renders the ordered catalog as
// TOML, one table per package.
//
// A package without a readable metadata.toml is skipped silently. Every
// other failure (unreadable manifest, malformed TOML) aborts the build so
// that a partial catalog is never written.
package metadata
