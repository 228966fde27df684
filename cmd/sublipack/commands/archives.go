package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/history"
)

var archivesJSON bool

func init() {
	archivesCmd.Flags().BoolVar(&archivesJSON, "json", false,
		"output as JSON")
	rootCmd.AddCommand(archivesCmd)
}

var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List previously packed archives",
	Long: `List the archives recorded by 'sublipack pack', newest first.

The list is local history, not an inventory: archives deleted or moved
since packing still appear.`,
	Args: cobra.NoArgs,
	RunE: runArchives,
}

func runArchives(cmd *cobra.Command, _ []string) error {
	entries, err := history.NewStore("").List()
	if err != nil {
		if errors.Is(err, errors.ErrNoHistory) {
			fmt.Fprintln(cmd.OutOrStdout(), "No archives recorded. Run 'sublipack pack' first.")
			return nil
		}
		return errors.Wrap(err, "reading archive history")
	}

	if archivesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tSIZE\tEXCLUDED\tENCRYPTED\tFILE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			humanSize(e.Size),
			e.Excluded,
			e.Encrypted,
			e.File,
		)
	}
	return w.Flush()
}
