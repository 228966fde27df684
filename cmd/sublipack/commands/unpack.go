package commands

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/archiver"
	"github.com/sublipack/sublipack/internal/backup"
	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/history"
	"github.com/sublipack/sublipack/internal/logging"
)

var (
	unpackOutputDir string
	unpackPassword  string
	unpackNoBackup  bool
	unpackLast      bool
)

func init() {
	unpackCmd.Flags().StringVarP(&unpackOutputDir, "output-dir", "d", "",
		"directory to extract into (default: the Sublime Text data directory)")
	unpackCmd.Flags().StringVarP(&unpackPassword, "password", "p", "",
		"decrypt the archive (or set SUBLIPACK_PASSWORD)")
	unpackCmd.Flags().BoolVar(&unpackNoBackup, "no-backup", false,
		"skip mirroring the live directories before extraction")
	unpackCmd.Flags().BoolVar(&unpackLast, "last", false,
		"restore the most recently packed archive")
	rootCmd.AddCommand(unpackCmd)
}

var unpackCmd = &cobra.Command{
	Use:   "unpack [archive]",
	Short: "Restore a configuration archive",
	Long: `Extract a sublipack archive into the Sublime Text data directory.

Before extraction the live Packages and Installed Packages directories
are mirrored to .bak copies, so a broken archive never destroys the
only copy of a configuration. Use 'sublipack backup restore' to roll
back to the mirrors, or 'sublipack backup remove' to discard them once
the restored configuration works.

Without an archive argument, a picker over previously packed archives
opens when running interactively.`,
	Example: `  # Restore a specific archive
  sublipack unpack ~/sublime.zip

  # Pick from previously packed archives
  sublipack unpack

  # Restore the most recent archive without prompting
  sublipack unpack --last

  # Extract somewhere else, without touching the data directory
  sublipack unpack ~/sublime.zip -d /tmp/inspect --no-backup

  See Also: sublipack backup restore, sublipack archives`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnpack,
}

func runUnpack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	input, err := resolveInputArchive(args)
	if err != nil {
		return err
	}
	if input == "" {
		// Picker aborted.
		return nil
	}

	if _, err := os.Stat(input); err != nil {
		return errors.NewUserError(
			errors.Newf("archive %s does not exist", input),
			"Run 'sublipack archives' to list known archives")
	}

	roots, err := resolveRoots()
	if err != nil {
		return err
	}

	bin, err := archiver.Locate(cfg.Binary)
	if err != nil {
		return errors.NewSystemError(err, "Run: sublipack doctor")
	}

	if unpackNoBackup {
		log.Debug("skipping mirror backup")
	} else {
		if err := backup.NewManager(roots).Create(ctx); err != nil {
			return errors.NewSystemError(
				errors.Wrap(err, "mirroring live directories"),
				"Pass --no-backup to extract without mirrors (unsafe)")
		}
	}

	arc := archiver.New(bin, roots, archiver.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	err = arc.Unpack(ctx, archiver.ExtractOptions{
		InputFile: input,
		OutputDir: expandHome(unpackOutputDir),
		Password:  resolvePassword(unpackPassword),
	})
	if err != nil {
		suggestion := "Run: sublipack doctor"
		if !unpackNoBackup {
			suggestion = "Run 'sublipack backup restore' to roll back to the mirrors"
		}
		return errors.NewSystemError(err, suggestion)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ restored %s%s\n", colorGreen, input, colorReset)
	if !unpackNoBackup {
		fmt.Fprintf(cmd.OutOrStdout(), "%sMirrors kept; run 'sublipack backup remove' once the restored configuration works.%s\n",
			colorGray, colorReset)
	}

	return nil
}

// resolveInputArchive returns the archive to extract: the positional
// argument when given, the newest recorded archive with --last, otherwise
// an interactive pick over the archive history. Returns "" when the picker
// is aborted.
func resolveInputArchive(args []string) (string, error) {
	if len(args) > 0 {
		return expandHome(args[0]), nil
	}

	if unpackLast {
		entry, err := history.NewStore("").Last()
		if err != nil {
			if errors.Is(err, errors.ErrNoHistory) {
				return "", errors.NewUserError(err, "Run 'sublipack pack' first")
			}
			return "", errors.Wrap(err, "reading archive history")
		}
		return entry.File, nil
	}

	if !logging.IsTTY(os.Stdout) {
		return "", errors.NewUserError(
			errors.New("no archive given"),
			"Pass an archive path, or pass --last, or run interactively to pick one")
	}

	entries, err := history.NewStore("").List()
	if err != nil {
		if errors.Is(err, errors.ErrNoHistory) {
			return "", errors.NewUserError(err, "Pass an archive path, or run 'sublipack pack' first")
		}
		return "", errors.Wrap(err, "reading archive history")
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].File, entries[i].CreatedAt.Format("2006-01-02 15:04"))
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]
			return fmt.Sprintf("File: %s\nCreated: %s\nSize: %s\nSHA256: %s\nExcluded: %d\nEncrypted: %t",
				e.File,
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				humanSize(e.Size),
				e.SHA256,
				e.Excluded,
				e.Encrypted,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "archive picker failed")
	}

	return entries[idx].File, nil
}
