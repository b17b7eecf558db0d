package commands

import (
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/internal/metadata"
	"github.com/thoreinstein/pkgmeta/internal/translate"
)

var (
	showFormat      string
	showInteractive bool
)

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "toml", "output format: toml, yaml, json")
	showCmd.Flags().BoolVarP(&showInteractive, "interactive", "i", false, "pick the entry with a fuzzy finder")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [KEY]",
	Short: "Print one entry of metadata.toml",
	Long: `Print a single entry of the generated metadata.toml. Pass the package
key, or use -i to pick one interactively.`,
	Example: `  pkgmeta show postcss-calc
  pkgmeta show autoprefixer --format yaml
  pkgmeta show -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

// pickKey selects a record interactively. Tests replace it.
var pickKey = fuzzyPick

func runShow(c *cobra.Command, args []string) error {
	return runShowWithWriter(c.OutOrStdout(), args)
}

// runShowWithWriter allows injecting a writer for testing.
func runShowWithWriter(w io.Writer, args []string) error {
	format, err := translate.ParseFormat(showFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --format toml, yaml or json")
	}
	if len(args) == 0 && !showInteractive {
		return errors.NewUserError(errors.New("no key given"), "Pass a key or use -i")
	}

	catalog, path, err := readCatalog()
	if err != nil {
		return err
	}

	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		key, err = pickKey(catalog)
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "interactive selection failed")
		}
	}

	r, ok := catalog.Get(key)
	if !ok {
		return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "%q in %s", key, path),
			"Run 'pkgmeta list' to see available keys")
	}

	out, err := renderRecord(r, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return errors.Wrap(err, "writing output")
}

// renderRecord encodes a single record as a one-table document.
func renderRecord(r *metadata.Record, format translate.Format) ([]byte, error) {
	single := metadata.NewCatalog()
	single.Put(r)
	data, err := metadata.Encode(single)
	if err != nil {
		return nil, errors.Wrap(err, "encoding entry")
	}
	return translate.FromTOML(data, format)
}

func fuzzyPick(c *metadata.Catalog) (string, error) {
	records := c.Records()
	if len(records) == 0 {
		return "", errors.Wrap(errors.ErrNotFound, "catalog is empty")
	}

	idx, err := fuzzyfinder.Find(
		records,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", records[i].Key, records[i].ShortName)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			r := records[i]
			return fmt.Sprintf("Key: %s\nShort name: %s\nSource: %s\n\n%s\n\n%s",
				r.Key, r.ShortName, r.Source, r.ShortDescription, r.LongDescription)
		}),
	)
	if err != nil {
		return "", err
	}
	return records[idx].Key, nil
}
