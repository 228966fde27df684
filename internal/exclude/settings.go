package exclude

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tailscale/hujson"

	"github.com/sublipack/sublipack/pkg/fileutil"
)

// packageControlSettings is the subset of Package Control.sublime-settings
// that pack operations need.
type packageControlSettings struct {
	InstalledPackages []string `json:"installed_packages"`
}

// LoadInstalledPackages reads the installed_packages list from a Package
// Control settings file. A missing file means Package Control is not
// installed; that returns an empty list, not an error.
//
// Sublime settings files are JSON extended with // and /* */ comments and
// trailing commas, so the content is standardized to plain JSON before
// decoding.
func LoadInstalledPackages(path string) ([]string, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading package control settings")
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing package control settings")
	}

	var settings packageControlSettings
	if err := json.Unmarshal(standardized, &settings); err != nil {
		return nil, errors.Wrap(err, "parsing package control settings")
	}

	return settings.InstalledPackages, nil
}
