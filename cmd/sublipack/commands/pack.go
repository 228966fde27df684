package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/archiver"
	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/exclude"
	"github.com/sublipack/sublipack/internal/history"
	"github.com/sublipack/sublipack/internal/logging"
	"github.com/sublipack/sublipack/internal/paths"
)

var (
	packOutput           string
	packPassword         string
	packBackup           bool
	packNoPackageControl bool
	packExclude          []string
)

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "",
		"archive file to create (default: timestamped name in the output directory)")
	packCmd.Flags().StringVarP(&packPassword, "password", "p", "",
		"encrypt the archive (or set SUBLIPACK_PASSWORD)")
	packCmd.Flags().BoolVar(&packBackup, "backup", false,
		"full backup archive: include Package Control managed packages")
	packCmd.Flags().BoolVar(&packNoPackageControl, "no-package-control", false,
		"do not read Package Control settings for exclusions")
	packCmd.Flags().StringSliceVarP(&packExclude, "exclude", "x", nil,
		"extra entries to exclude, relative to the data directory")
	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Create an archive of the Sublime Text configuration",
	Long: `Pack the Packages and Installed Packages directories into a ZIP archive.

Packages managed by Package Control are excluded: Package Control
reinstalls them from its settings file, which itself travels inside
the archive under Packages/User. Package Control itself is always
included so a restored configuration can bootstrap.

With --backup, managed packages are included too, producing a full
snapshot of the configuration.`,
	Example: `  # Pack to a timestamped archive in the temp directory
  sublipack pack

  # Pack to a fixed path with encryption
  sublipack pack -o ~/sublime.zip -p s3cret

  # Full snapshot including Package Control managed packages
  sublipack pack --backup -o ~/sublime-full.zip

  See Also: sublipack unpack, sublipack archives`,
	Args: cobra.NoArgs,
	RunE: runPack,
}

func runPack(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	roots, err := resolveRoots()
	if err != nil {
		return err
	}

	bin, err := archiver.Locate(cfg.Binary)
	if err != nil {
		return errors.NewSystemError(err, "Run: sublipack doctor")
	}

	excludes, err := buildExcludes(roots)
	if err != nil {
		return err
	}

	password := resolvePassword(packPassword)

	arc := archiver.New(bin, roots, archiver.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	output, err := arc.Pack(ctx, archiver.PackOptions{
		OutputFile: expandHome(packOutput),
		OutputDir:  expandHome(cfg.OutputDir),
		Password:   password,
		Excludes:   excludes,
	})
	if err != nil {
		return errors.NewSystemError(err, "Run: sublipack doctor")
	}

	recordArchive(log, output, len(excludes), password != "")

	entryWord := "entries"
	if len(excludes) == 1 {
		entryWord = "entry"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ packed to %s%s (%d %s excluded)\n",
		colorGreen, output, colorReset, len(excludes), entryWord)

	return nil
}

// buildExcludes assembles the exclusion list from the config file, the
// --exclude flag, and Package Control's settings.
func buildExcludes(roots []paths.Root) ([]string, error) {
	extra := append(append([]string{}, cfg.Exclude...), packExclude...)

	opts := exclude.Options{
		Extra:              extra,
		SkipPackageControl: packBackup || packNoPackageControl,
	}

	if !opts.SkipPackageControl {
		dataDir, err := resolveDataDir()
		if err != nil {
			return nil, err
		}
		installed, err := exclude.LoadInstalledPackages(paths.PackageControlSettingsPath(dataDir))
		if err != nil {
			return nil, errors.NewUserError(
				errors.Wrap(err, "reading Package Control settings"),
				"Fix the settings file, or pass --no-package-control")
		}
		opts.InstalledPackages = installed
	}

	return exclude.Build(roots, opts), nil
}

// recordArchive appends the archive to the history file. Failures are
// logged, not fatal: the archive itself was created successfully.
func recordArchive(log *slog.Logger, output string, excluded int, encrypted bool) {
	entry, err := history.NewEntry(output, excluded, encrypted)
	if err != nil {
		log.Warn("cannot stat archive for history", "file", output, "error", err)
		return
	}
	if err := history.NewStore("").Record(entry); err != nil {
		log.Warn("cannot record archive history", "file", output, "error", err)
	}
}
