package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/archiver"
	"github.com/sublipack/sublipack/internal/config"
	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/paths"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

var (
	initYes   bool
	initForce bool
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Non-interactive mode, accept all defaults")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sublipack configuration",
	Long: `Bootstrap the sublipack configuration file.

Detects the Sublime Text data directory and the archiver binary, then
writes a config.yaml with defaults to the user config directory.`,
	Example: `  # Initialize with interactive prompts
  sublipack init

  # Initialize non-interactively, accepting defaults
  sublipack init --yes

  # Force overwrite existing configuration
  sublipack init --force

  See Also: sublipack doctor`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	configPath := config.DefaultPath()

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(out, "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(out, "Use --force to overwrite")
		return nil
	}

	// Detection results are informational; missing pieces do not block
	// init, doctor reports them with fix hints.
	if dataDir, err := paths.DataDir(); err == nil {
		fmt.Fprintf(out, "Detected data directory: %s\n", dataDir)
	} else {
		fmt.Fprintf(out, "%sNo Sublime Text data directory detected; set data_dir in %s%s\n",
			colorYellow, configPath, colorReset)
	}
	if bin, err := archiver.Locate(""); err == nil {
		fmt.Fprintf(out, "Detected archiver: %s\n", bin)
	} else {
		fmt.Fprintf(out, "%sNo 7-Zip-compatible binary found; install p7zip or set binary in %s%s\n",
			colorYellow, configPath, colorReset)
	}

	if !initYes {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "This will create:")
		fmt.Fprintf(out, "  %s\n", configPath)
		fmt.Fprintln(out)

		if !confirm("Proceed?") {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	if err := paths.EnsureDir(filepath.Dir(configPath), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(configPath, config.Default()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(out, "%s✓ wrote %s%s\n", colorGreen, configPath, colorReset)
	return nil
}

// confirm prompts for a yes/no answer on stdin. Empty input means yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [Y/n] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}
