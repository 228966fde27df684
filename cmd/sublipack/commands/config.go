package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sublipack/sublipack/internal/config"
	"github.com/sublipack/sublipack/internal/editor"
	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/paths"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeys are the keys the set subcommand accepts.
var configKeys = []string{"version", "data_dir", "binary", "output_dir", "exclude"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sublipack configuration",
	Long: `Manage sublipack configuration stored in the user config directory.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  sublipack config

  # Get a specific value
  sublipack config get binary

  # Set a value
  sublipack config set output_dir ~/archives

  See Also: sublipack init, sublipack doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Array values are printed one per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

For the exclude list, use comma-separated entries.`,
	Example: `  # Pin the archiver binary
  sublipack config set binary /usr/local/bin/7zz

  # Always exclude two packages
  sublipack config set exclude "Packages/Zukan Icon Theme,Packages/Cache"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	RunE:  runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses the EDITOR environment variable, falling back to VISUAL, nano, vi.
If no configuration file exists, run 'sublipack init' first.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	if !viper.IsSet(key) {
		fmt.Fprintln(cmd.OutOrStdout(), "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(cmd.OutOrStdout(), item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(cmd.OutOrStdout(), item)
		}
	default:
		fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if !isConfigKey(key) {
		return errors.NewUserError(
			errors.Newf("unknown key %q", key),
			fmt.Sprintf("Valid keys: %s", strings.Join(configKeys, ", ")))
	}

	switch key {
	case "exclude":
		var entries []string
		for _, e := range strings.Split(value, ",") {
			if e = strings.TrimSpace(e); e != "" {
				entries = append(entries, e)
			}
		}
		viper.Set(key, entries)
		if err := writeConfig(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, entries)

	default:
		viper.Set(key, value)
		if err := writeConfig(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	}

	// Re-validate the result so a bad value is reported immediately.
	updated, err := config.Load("")
	if err == nil {
		if errs := config.Validate(updated); len(errs) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%sWarning: %v%s\n", colorYellow, errs[0], colorReset)
		}
	}

	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	out := map[string]any{
		"version":    viper.GetInt("version"),
		"data_dir":   viper.GetString("data_dir"),
		"binary":     viper.GetString("binary"),
		"output_dir": viper.GetString("output_dir"),
		"exclude":    viper.GetStringSlice("exclude"),
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	configPath := config.DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return errors.NewUserError(
			errors.Newf("config file not found at %s", configPath),
			"Run 'sublipack init' to create it")
	}

	return editor.Open(configPath)
}

// writeConfig persists the current viper state to the default config path.
func writeConfig() error {
	out := config.Config{
		Version:   viper.GetInt("version"),
		DataDir:   viper.GetString("data_dir"),
		Binary:    viper.GetString("binary"),
		OutputDir: viper.GetString("output_dir"),
		Exclude:   viper.GetStringSlice("exclude"),
	}

	path := config.DefaultPath()
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, &out); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func isConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}
