package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage mirror backups of the live directories",
	Long: `Manage the .bak mirror copies of the Packages and Installed Packages
directories.

Mirrors are created automatically before 'sublipack unpack' extracts an
archive. The subcommands create, inspect, remove, and restore them
manually.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
