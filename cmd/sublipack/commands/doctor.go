package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sublipack/sublipack/internal/doctor"
	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorOutput  string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().StringVar(&doctorOutput, "output", "",
		"also write the full report to a JSON file")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose packing and restore problems",
	Long: `Run diagnostic checks on the sublipack environment.

Verifies the archiver binary, the Sublime Text data directory, the
Package Control settings file, and leftover backup mirrors.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

--output combines with any mode and also writes the full report to a
JSON file.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ArchiverCheck{Override: cfg.Binary})
	runner.AddCheck(&doctor.DataDirCheck{Override: doctorDataDir()})

	// The remaining checks need a data directory to look at; skip them
	// when none can be resolved, the data directory check reports why.
	if dataDir, err := resolveDataDir(); err == nil {
		runner.AddCheck(&doctor.SettingsCheck{DataDir: dataDir})
		runner.AddCheck(&doctor.MirrorCheck{DataDir: dataDir})
	}

	report := runner.Run()

	if err := outputDoctorReport(cmd, report); err != nil {
		return err
	}

	if doctorOutput != "" {
		if err := writeDoctorReport(doctorOutput, report); err != nil {
			return err
		}
	}

	if report.HasErrors() {
		return errors.NewExitError(errors.New("errors found"), 2)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errors.New("warnings found"), 1)
	}
	return nil
}

// doctorDataDir returns the configured data directory override, flag first.
func doctorDataDir() string {
	if dataDirFlag != "" {
		return expandHome(dataDirFlag)
	}
	if cfg.DataDir != "" {
		return expandHome(cfg.DataDir)
	}
	return ""
}

// writeDoctorReport persists the report to a JSON file, written atomically
// so a crashed run never leaves a truncated report behind.
func writeDoctorReport(path string, report *doctor.Report) error {
	if err := fileutil.AtomicWriteJSON(expandHome(path), report); err != nil {
		return errors.Wrap(err, "writing doctor report")
	}
	return nil
}

func outputDoctorReport(cmd *cobra.Command, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	return outputDoctorText(cmd, report)
}

func outputDoctorText(cmd *cobra.Command, report *doctor.Report) error {
	out := cmd.OutOrStdout()

	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(out, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(out, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
