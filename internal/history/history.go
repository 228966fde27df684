// Package history records successfully created archives in a TOML state
// file so they can be listed and re-used (e.g. by the interactive unpack
// picker). The file lives under the XDG state directory and is written
// atomically; a missing file simply means nothing has been packed yet.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"

	sperrors "github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/paths"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

// Entry describes one recorded archive.
type Entry struct {
	// File is the absolute archive path.
	File string `toml:"file" json:"file"`

	// CreatedAt is when the archive was created.
	CreatedAt time.Time `toml:"created_at" json:"created_at"`

	// Size is the archive size in bytes.
	Size int64 `toml:"size" json:"size"`

	// SHA256 is the hex-encoded hash of the archive contents.
	SHA256 string `toml:"sha256" json:"sha256"`

	// Excluded is the number of exclusion entries applied.
	Excluded int `toml:"excluded" json:"excluded"`

	// Encrypted reports whether the archive was created with a password.
	Encrypted bool `toml:"encrypted" json:"encrypted"`
}

// state is the on-disk TOML document.
type state struct {
	Archives []Entry `toml:"archives"`
}

// Store reads and writes the history file.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
// An empty path uses the default location under the XDG state directory.
func NewStore(path string) *Store {
	if path == "" {
		path = paths.HistoryPath()
	}
	return &Store{path: path}
}

// NewEntry builds an Entry for an archive file, hashing its contents.
func NewEntry(file string, excluded int, encrypted bool) (Entry, error) {
	info, err := os.Stat(file)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "stat %s", file)
	}

	hash, err := hashFile(file)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		File:      file,
		CreatedAt: time.Now().UTC(),
		Size:      info.Size(),
		SHA256:    hash,
		Excluded:  excluded,
		Encrypted: encrypted,
	}, nil
}

// Record appends an entry to the history file, creating it if necessary.
func (s *Store) Record(entry Entry) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	st.Archives = append(st.Archives, entry)

	data, err := toml.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "marshaling history")
	}

	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return errors.Wrap(err, "creating state directory")
	}
	return fileutil.AtomicWriteFile(s.path, data, 0644)
}

// List returns all recorded archives, newest first.
// Returns ErrNoHistory when nothing has been recorded.
func (s *Store) List() ([]Entry, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(st.Archives) == 0 {
		return nil, sperrors.ErrNoHistory
	}

	entries := slices.Clone(st.Archives)
	slices.SortFunc(entries, func(a, b Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return entries, nil
}

// Last returns the most recently recorded archive.
func (s *Store) Last() (Entry, error) {
	entries, err := s.List()
	if err != nil {
		return Entry{}, err
	}
	return entries[0], nil
}

// load reads the state file; a missing file yields an empty state.
func (s *Store) load() (*state, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &state{}, nil
		}
		return nil, errors.Wrap(err, "reading history")
	}

	var st state
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(err, "parsing history")
	}
	return &st, nil
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
