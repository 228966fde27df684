package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/backup"
	"github.com/sublipack/sublipack/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupCreateCmd)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Mirror the live directories to .bak copies",
	Long: `Copy the Packages and Installed Packages directories to .bak mirrors.

Stale mirrors from a previous run are replaced. Directories that do
not exist are skipped.`,
	Example: `  # Mirror before a risky manual change
  sublipack backup create

  See Also:
    sublipack backup restore - Roll back to the mirrors
    sublipack backup remove  - Discard the mirrors`,
	Args: cobra.NoArgs,
	RunE: runBackupCreate,
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	roots, err := resolveRoots()
	if err != nil {
		return err
	}

	mgr := backup.NewManager(roots)
	if err := mgr.Create(cmd.Context()); err != nil {
		return errors.NewSystemError(err, "Run: sublipack doctor")
	}

	for _, s := range mgr.Status() {
		if s.BackupExists {
			fmt.Fprintf(cmd.OutOrStdout(), "%s✓ mirrored %s%s\n", colorGreen, s.BackupPath, colorReset)
		}
	}

	return nil
}
