package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Regenerate metadata.toml from every package",
	Long: `Discover every package, merge its metadata.toml with its package.json,
add the curated external entries and rewrite metadata.toml at the
repository root.

Packages without a metadata.toml are skipped. A malformed metadata file or
a missing package.json aborts the run and leaves the existing output
untouched.`,
	Example: `  pkgmeta rebuild
  pkgmeta rebuild --root ../cssnano -v`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func runRebuild(c *cobra.Command, _ []string) error {
	return runRebuildWithWriter(c.Context(), c.OutOrStdout())
}

// runRebuildWithWriter allows injecting a writer for testing.
func runRebuildWithWriter(ctx context.Context, w io.Writer) error {
	b, err := newBuilder()
	if err != nil {
		return err
	}

	res, changed, err := b.Rebuild(ctx)
	if err != nil {
		return errors.NewSystemError(err, "The existing output was left unchanged")
	}

	if quiet {
		return nil
	}
	state := "updated"
	if !changed {
		state = "unchanged"
	}
	fmt.Fprintf(w, "%s %s: %d entries (%d packages, %d without metadata)\n",
		b.Output, state, res.Catalog.Len(), res.Packages, res.Skipped)
	return nil
}
