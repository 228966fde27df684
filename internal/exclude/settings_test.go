package exclude

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInstalledPackages(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name: "plain json",
			content: `{
  "bootstrapped": true,
  "installed_packages": ["Emmet", "GitGutter"]
}`,
			want: []string{"Emmet", "GitGutter"},
		},
		{
			name: "line comments and trailing commas",
			content: `{
  // managed by Package Control
  "installed_packages": [
    "Emmet",
    "SideBarEnhancements",
  ],
}`,
			want: []string{"Emmet", "SideBarEnhancements"},
		},
		{
			name: "block comments",
			content: `{
  /* in_process_packages is transient */
  "installed_packages": ["A File Icon"]
}`,
			want: []string{"A File Icon"},
		},
		{
			name:    "comment markers inside strings survive",
			content: `{"installed_packages": ["https//NotAComment", "star/*pkg"]}`,
			want:    []string{"https//NotAComment", "star/*pkg"},
		},
		{
			name:    "no installed_packages key",
			content: `{"bootstrapped": true}`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Package Control.sublime-settings")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := LoadInstalledPackages(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadInstalledPackages_MissingFile(t *testing.T) {
	got, err := LoadInstalledPackages(filepath.Join(t.TempDir(), "missing.sublime-settings"))
	require.NoError(t, err, "missing settings file means no Package Control")
	assert.Empty(t, got)
}

func TestLoadInstalledPackages_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Package Control.sublime-settings")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadInstalledPackages(path)
	assert.Error(t, err)
}
