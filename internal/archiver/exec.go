package archiver

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"

	sperrors "github.com/sublipack/sublipack/internal/errors"
)

// binaryNames are the 7-Zip-compatible binaries probed on PATH, in order of
// preference. 7za is the standalone p7zip binary the original tooling ships.
var binaryNames = []string{"7za", "7zz", "7z"}

// Locate resolves the archiver binary.
// A non-empty override is used as-is: names are resolved via PATH, paths are
// checked directly. Without an override, the well-known names are probed.
// Returns ErrArchiverNotFound when nothing resolves.
func Locate(override string) (string, error) {
	if override != "" {
		if strings.ContainsRune(override, os.PathSeparator) {
			if _, err := os.Stat(override); err != nil {
				return "", errors.Wrapf(sperrors.ErrArchiverNotFound, "%s", override)
			}
			return override, nil
		}
		path, err := exec.LookPath(override)
		if err != nil {
			return "", errors.Wrapf(sperrors.ErrArchiverNotFound, "%s not on PATH", override)
		}
		return path, nil
	}

	for _, name := range binaryNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.Wrapf(sperrors.ErrArchiverNotFound,
		"tried %s; install p7zip", strings.Join(binaryNames, ", "))
}

// Executor runs the external archiver process.
// It returns the process exit code; err is non-nil only when the process
// could not be run at all (the exit code is then meaningless).
type Executor interface {
	Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) (int, error)
}

// execExecutor runs the binary via os/exec, blocking until it exits.
type execExecutor struct{}

// NewExecutor returns the default os/exec-backed Executor.
func NewExecutor() Executor {
	return execExecutor{}
}

func (execExecutor) Run(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Wrapf(err, "running %s", bin)
}

// redactArgs returns a copy of args safe for logging: any -p<password>
// argument has its value masked.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if strings.HasPrefix(arg, "-p") && len(arg) > 2 {
			out[i] = "-p********"
		} else {
			out[i] = arg
		}
	}
	return out
}
