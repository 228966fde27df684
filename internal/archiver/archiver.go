package archiver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	sperrors "github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/logging"
	"github.com/sublipack/sublipack/internal/paths"
)

// Archive format flags shared by add and extract invocations.
// -tzip keeps archives readable by any ZIP tool; -y assumes yes on queries.
var baseFlags = []string{"-tzip", "-y"}

// Archiver invokes the external binary against a fixed set of packing roots.
type Archiver struct {
	bin    string
	roots  []paths.Root
	exec   Executor
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithExecutor replaces the process executor. Used by tests.
func WithExecutor(e Executor) Option {
	return func(a *Archiver) {
		a.exec = e
	}
}

// WithOutput redirects the archiver process output streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *Archiver) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// New creates an Archiver for the given binary and packing roots.
func New(bin string, roots []paths.Root, opts ...Option) *Archiver {
	a := &Archiver{
		bin:    bin,
		roots:  roots,
		exec:   NewExecutor(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PackOptions controls a Pack invocation.
type PackOptions struct {
	// OutputFile is the archive to create. Empty generates a timestamped
	// file name under OutputDir.
	OutputFile string

	// OutputDir is where generated file names are placed.
	// Empty means the system temp directory.
	OutputDir string

	// Password encrypts archive entries when non-empty.
	Password string

	// Excludes are exclusion entries relative to the data directory; each
	// becomes a -x!<entry>* pattern.
	Excludes []string
}

// Pack compresses the packing roots into a ZIP archive and returns the
// archive file name.
func (a *Archiver) Pack(ctx context.Context, opts PackOptions) (string, error) {
	output := opts.OutputFile
	if output == "" {
		output = generateOutputFilename(opts.OutputDir)
	}

	args := a.addArgs(output, opts.Password, opts.Excludes)
	if err := a.run(ctx, args); err != nil {
		return "", errors.Wrapf(err, "packing to %s", output)
	}
	return output, nil
}

// ExtractOptions controls an Unpack invocation.
type ExtractOptions struct {
	// InputFile is the archive to extract.
	InputFile string

	// OutputDir is the extraction target. Empty means the parent of the
	// first packing root (the data directory).
	OutputDir string

	// Password decrypts archive entries when non-empty.
	Password string
}

// Unpack extracts an archive into the output directory.
func (a *Archiver) Unpack(ctx context.Context, opts ExtractOptions) error {
	if opts.InputFile == "" {
		return errors.New("input file is required")
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = a.defaultOutputDir()
	}

	args := a.extractArgs(opts.InputFile, outputDir, opts.Password)
	if err := a.run(ctx, args); err != nil {
		return errors.Wrapf(err, "unpacking %s", opts.InputFile)
	}
	return nil
}

// addArgs assembles the argument list for an add ("a") invocation.
// Flag order matches the external tool's expectations: mode, format flags,
// password, exclusions, output file, then the source directories.
func (a *Archiver) addArgs(output, password string, excludes []string) []string {
	args := append([]string{"a"}, baseFlags...)
	if password != "" {
		args = append(args, "-p"+password)
	}
	for _, entry := range excludes {
		args = append(args, "-x!"+entry+"*")
	}
	args = append(args, output)
	for _, root := range a.roots {
		args = append(args, root.Path)
	}
	return args
}

// extractArgs assembles the argument list for an extract ("x") invocation.
func (a *Archiver) extractArgs(input, outputDir, password string) []string {
	args := append([]string{"x"}, baseFlags...)
	args = append(args, "-o"+outputDir)
	if password != "" {
		args = append(args, "-p"+password)
	}
	args = append(args, input)
	return args
}

// run executes the binary and maps the exit code to an error.
// Exit code 1 is a warning: logged, not fatal.
func (a *Archiver) run(ctx context.Context, args []string) error {
	logger := logging.FromContext(ctx)
	logger.Debug("running archiver", "bin", a.bin, "args", redactArgs(args))

	code, err := a.exec.Run(ctx, a.bin, args, a.stdout, a.stderr)
	if err != nil {
		return err
	}

	switch code {
	case exitOK:
		return nil
	case exitWarning:
		logger.Warn("archiver reported warnings", "exit_code", code)
		return nil
	default:
		return errors.Wrapf(sperrors.ErrArchiverFailed,
			"exit code %d: %s", code, exitCodeMessage(code))
	}
}

// defaultOutputDir is the parent of the first packing root; the two roots
// share the data directory as their parent.
func (a *Archiver) defaultOutputDir() string {
	if len(a.roots) == 0 {
		return "."
	}
	return filepath.Dir(a.roots[0].Path)
}

// generateOutputFilename builds a timestamped archive name under dir,
// falling back to the system temp directory.
func generateOutputFilename(dir string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("sublipack-%s.zip", time.Now().Format("20060102T150405"))
	return filepath.Join(dir, name)
}
