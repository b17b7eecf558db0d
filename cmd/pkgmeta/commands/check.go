package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/pkgmeta/internal/build"
	"github.com/thoreinstein/pkgmeta/internal/errors"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that metadata.toml is up to date",
	Long: `Build the catalog in memory and compare it with metadata.toml on disk.
Nothing is written. The command exits with status 1 when the file is
missing or differs from a fresh build, which makes it suitable for CI.`,
	Example: `  pkgmeta check
  pkgmeta check --root ../cssnano`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(c *cobra.Command, _ []string) error {
	return runCheckWithWriter(c.Context(), c.OutOrStdout())
}

// runCheckWithWriter allows injecting a writer for testing.
func runCheckWithWriter(ctx context.Context, w io.Writer) error {
	b, err := newBuilder()
	if err != nil {
		return err
	}

	report, err := b.Check(ctx)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if !report.Stale() {
		if !quiet {
			fmt.Fprintf(w, "%s %s is up to date\n", color.GreenString("ok"), report.Path)
		}
		return nil
	}

	if !quiet {
		printReport(w, report)
	}
	return errors.NewUserError(errors.Wrap(errors.ErrStale, report.Path), "Run: pkgmeta rebuild")
}

func printReport(w io.Writer, r *build.Report) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	changed := color.New(color.FgYellow)

	if r.Missing {
		fmt.Fprintf(w, "%s does not exist\n", r.Path)
		return
	}

	fmt.Fprintf(w, "%s is out of date:\n", r.Path)
	for _, key := range r.Added {
		added.Fprintf(w, "  + %s\n", key)
	}
	for _, key := range r.Removed {
		removed.Fprintf(w, "  - %s\n", key)
	}
	for _, key := range r.ChangedKeys() {
		changed.Fprintf(w, "  ~ %s\n", key)
		for line := range strings.Lines(r.Changed[key]) {
			fmt.Fprintf(w, "      %s", colorDiffLine(line, added, removed))
		}
	}
	if r.Reordered {
		fmt.Fprintln(w, "  entries are not in sorted order")
	}
	if r.FormatOnly {
		fmt.Fprintln(w, "  content matches but formatting differs")
	}
}

// colorDiffLine colors one line of cmp.Diff output by its marker.
func colorDiffLine(line string, added, removed *color.Color) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "+"):
		return added.Sprint(line)
	case strings.HasPrefix(trimmed, "-"):
		return removed.Sprint(line)
	}
	return line
}
