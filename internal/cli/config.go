package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nourshop/storefront/pkg/config"
)

// Settings is the effective CLI configuration. Values come from the config
// file first, then environment variables, then built-in defaults.
type Settings struct {
	APIURL    string `yaml:"api_url" env:"STOREFRONT_API_URL"`
	StatePath string `yaml:"state_path" env:"STOREFRONT_STATE_PATH"`
	RedisURL  string `yaml:"redis_url" env:"STOREFRONT_REDIS_URL"`
	LogFormat string `yaml:"log_format" env:"STOREFRONT_LOG_FORMAT"`
	Verbose   bool   `yaml:"verbose" env:"STOREFRONT_VERBOSE"`
}

const (
	defaultAPIURL    = "http://localhost:3001"
	defaultLogFormat = "text"
)

// configPath returns the CLI config file location, honoring an explicit
// override from the --config flag.
func configPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "storefront", "config.yaml"), nil
}

func defaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "storefront", "state.json"), nil
}

// loadSettings reads the YAML config file (a missing file is fine), layers
// environment overrides on top, and fills remaining gaps with defaults.
func loadSettings(path string) (Settings, error) {
	var settings Settings

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := config.Load(&settings); err != nil {
		return Settings{}, err
	}

	if settings.APIURL == "" {
		settings.APIURL = defaultAPIURL
	}
	if settings.LogFormat == "" {
		settings.LogFormat = defaultLogFormat
	}
	if settings.StatePath == "" && settings.RedisURL == "" {
		statePath, err := defaultStatePath()
		if err != nil {
			return Settings{}, err
		}
		settings.StatePath = statePath
	}

	return settings, nil
}

// saveSettings writes the config file, creating its directory when needed.
func saveSettings(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change CLI configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := current.settings
			fmt.Fprintf(cmd.OutOrStdout(), "api_url: %s\n", s.APIURL)
			fmt.Fprintf(cmd.OutOrStdout(), "state_path: %s\n", s.StatePath)
			if s.RedisURL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "redis_url: %s\n", s.RedisURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "log_format: %s\n", s.LogFormat)
			return nil
		},
	}

	var setURL string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Persist configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(flagConfig)
			if err != nil {
				return err
			}

			settings := current.settings
			if setURL != "" {
				settings.APIURL = setURL
			}

			if err := saveSettings(path, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	setCmd.Flags().StringVar(&setURL, "api-url", "", "backend base URL")

	configCmd.AddCommand(showCmd, setCmd)
	return configCmd
}
