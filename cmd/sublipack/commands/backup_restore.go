package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/backup"
	"github.com/sublipack/sublipack/internal/errors"
)

var backupRestoreForce bool

func init() {
	backupRestoreCmd.Flags().BoolVarP(&backupRestoreForce, "force", "f", false,
		"replace live directories that still exist")
	backupCmd.AddCommand(backupRestoreCmd)
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Move the .bak mirrors back to the live directories",
	Long: `Roll back to the mirror backups: each .bak mirror is moved back to its
live path.

By default the restore refuses to touch a live directory that still
exists; pass --force to replace it with the mirror.`,
	Example: `  # Roll back after a bad unpack
  sublipack backup restore --force

  See Also: sublipack backup create, sublipack unpack`,
	Args: cobra.NoArgs,
	RunE: runBackupRestore,
}

func runBackupRestore(cmd *cobra.Command, _ []string) error {
	roots, err := resolveRoots()
	if err != nil {
		return err
	}

	mgr := backup.NewManager(roots)
	if err := mgr.Restore(cmd.Context(), backupRestoreForce); err != nil {
		if errors.Is(err, backup.ErrLiveDirExists) {
			return errors.NewUserError(err, "Pass --force to replace the live directory")
		}
		return errors.NewSystemError(err, "Run: sublipack doctor")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ mirrors restored%s\n", colorGreen, colorReset)
	return nil
}
