package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of metadata.toml",
	Long: `List every entry of the generated metadata.toml in file order with its
short name and short description.`,
	Example: `  pkgmeta list
  pkgmeta list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry is one entry in JSON output.
type listEntry struct {
	Key              string `json:"key"`
	ShortName        string `json:"shortName"`
	ShortDescription string `json:"shortDescription"`
	Source           string `json:"source"`
}

func runList(c *cobra.Command, _ []string) error {
	return runListWithWriter(c.OutOrStdout())
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer) error {
	catalog, _, err := readCatalog()
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, catalog.Len())
	for _, r := range catalog.Records() {
		entries = append(entries, listEntry{
			Key:              r.Key,
			ShortName:        r.ShortName,
			ShortDescription: r.ShortDescription,
			Source:           r.Source,
		})
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding json")
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSHORT NAME\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.ShortName, truncate(e.ShortDescription, 60))
	}
	return errors.Wrap(tw.Flush(), "writing table")
}
