package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/backup"
)

func init() {
	backupCmd.AddCommand(backupStatusCmd)
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which mirrors and live directories exist",
	Args:  cobra.NoArgs,
	RunE:  runBackupStatus,
}

func runBackupStatus(cmd *cobra.Command, _ []string) error {
	roots, err := resolveRoots()
	if err != nil {
		return err
	}

	for _, s := range backup.NewManager(roots).Status() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n", colorBold, s.Path, colorReset)
		fmt.Fprintf(cmd.OutOrStdout(), "  live:   %s\n", presence(s.LiveExists))
		fmt.Fprintf(cmd.OutOrStdout(), "  mirror: %s (%s)\n", presence(s.BackupExists), s.BackupPath)
	}

	return nil
}

func presence(exists bool) string {
	if exists {
		return colorGreen + "present" + colorReset
	}
	return colorGray + "absent" + colorReset
}
