package archiver

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/paths"
)

// fakeExecutor records the invocation and returns a canned exit code.
type fakeExecutor struct {
	bin  string
	args []string
	code int
	err  error
}

func (f *fakeExecutor) Run(_ context.Context, bin string, args []string, _, _ io.Writer) (int, error) {
	f.bin = bin
	f.args = args
	return f.code, f.err
}

func testArchiver(exec Executor) *Archiver {
	return New("/usr/bin/7za", paths.Roots("/data"), WithExecutor(exec), WithOutput(io.Discard, io.Discard))
}

func TestPack_ArgumentAssembly(t *testing.T) {
	fake := &fakeExecutor{}
	a := testArchiver(fake)

	out, err := a.Pack(context.Background(), PackOptions{
		OutputFile: "/tmp/out.zip",
		Password:   "s3cret",
		Excludes:   []string{"Packages/Emmet", "Installed Packages/Emmet.sublime-package"},
	})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if out != "/tmp/out.zip" {
		t.Errorf("output = %q", out)
	}

	want := []string{
		"a", "-tzip", "-y",
		"-ps3cret",
		"-x!Packages/Emmet*",
		"-x!Installed Packages/Emmet.sublime-package*",
		"/tmp/out.zip",
		filepath.Join("/data", "Packages"),
		filepath.Join("/data", "Installed Packages"),
	}
	if len(fake.args) != len(want) {
		t.Fatalf("args = %v, want %v", fake.args, want)
	}
	for i := range want {
		if fake.args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, fake.args[i], want[i])
		}
	}
}

func TestPack_NoPasswordNoExcludes(t *testing.T) {
	fake := &fakeExecutor{}
	a := testArchiver(fake)

	if _, err := a.Pack(context.Background(), PackOptions{OutputFile: "/tmp/out.zip"}); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	for _, arg := range fake.args {
		if strings.HasPrefix(arg, "-p") || strings.HasPrefix(arg, "-x!") {
			t.Errorf("unexpected flag %q", arg)
		}
	}
}

func TestPack_GeneratesOutputFilename(t *testing.T) {
	fake := &fakeExecutor{}
	a := testArchiver(fake)

	dir := t.TempDir()
	out, err := a.Pack(context.Background(), PackOptions{OutputDir: dir})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	if filepath.Dir(out) != dir {
		t.Errorf("output %q not under %q", out, dir)
	}
	base := filepath.Base(out)
	if !strings.HasPrefix(base, "sublipack-") || !strings.HasSuffix(base, ".zip") {
		t.Errorf("unexpected generated name %q", base)
	}
}

func TestUnpack_ArgumentAssembly(t *testing.T) {
	fake := &fakeExecutor{}
	a := testArchiver(fake)

	err := a.Unpack(context.Background(), ExtractOptions{
		InputFile: "/tmp/in.zip",
		OutputDir: "/restore",
		Password:  "pw",
	})
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	want := []string{"x", "-tzip", "-y", "-o/restore", "-ppw", "/tmp/in.zip"}
	if len(fake.args) != len(want) {
		t.Fatalf("args = %v, want %v", fake.args, want)
	}
	for i := range want {
		if fake.args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, fake.args[i], want[i])
		}
	}
}

func TestUnpack_DefaultOutputDirIsDataDir(t *testing.T) {
	fake := &fakeExecutor{}
	a := testArchiver(fake)

	if err := a.Unpack(context.Background(), ExtractOptions{InputFile: "/tmp/in.zip"}); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	found := false
	for _, arg := range fake.args {
		if arg == "-o/data" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected -o/data in %v", fake.args)
	}
}

func TestUnpack_RequiresInputFile(t *testing.T) {
	a := testArchiver(&fakeExecutor{})
	if err := a.Unpack(context.Background(), ExtractOptions{}); err == nil {
		t.Error("expected error without input file")
	}
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantErr bool
	}{
		{"success", 0, false},
		{"warning is tolerated", 1, false},
		{"fatal error", 2, true},
		{"usage error", 7, true},
		{"aborted", 255, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArchiver(&fakeExecutor{code: tt.code})

			_, err := a.Pack(context.Background(), PackOptions{OutputFile: "/tmp/out.zip"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Pack() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrArchiverFailed) {
				t.Errorf("expected ErrArchiverFailed, got %v", err)
			}
		})
	}
}

func TestRedactArgs(t *testing.T) {
	args := []string{"a", "-tzip", "-phunter2", "-x!Packages/Emmet*", "out.zip"}
	got := redactArgs(args)

	for _, arg := range got {
		if strings.Contains(arg, "hunter2") {
			t.Errorf("password leaked in %v", got)
		}
	}
	if got[1] != "-tzip" || got[3] != "-x!Packages/Emmet*" {
		t.Errorf("non-password args should be untouched: %v", got)
	}
}
