package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/backup"
	"github.com/sublipack/sublipack/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupRemoveCmd)
}

var backupRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Discard the .bak mirrors",
	Long: `Delete the .bak mirror copies of the Packages and Installed Packages
directories. Mirrors that do not exist are ignored.

Run this once a restored configuration has been verified to work.`,
	Args: cobra.NoArgs,
	RunE: runBackupRemove,
}

func runBackupRemove(cmd *cobra.Command, _ []string) error {
	roots, err := resolveRoots()
	if err != nil {
		return err
	}

	if err := backup.NewManager(roots).Remove(cmd.Context()); err != nil {
		return errors.NewSystemError(err, "Remove the .bak directories manually")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ mirrors removed%s\n", colorGreen, colorReset)
	return nil
}
