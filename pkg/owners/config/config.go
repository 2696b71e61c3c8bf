package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// Output is the report path. Relative paths are resolved against the
	// working directory, never the scanned directory.
	Output string `mapstructure:"output"`

	// Format names the report formatter.
	Format string `mapstructure:"format"`

	// Extensions is the comma-separated extension list. A YAML list is
	// joined with commas. It is only used when ExtensionsSet is true;
	// otherwise the user is prompted.
	Extensions string `mapstructure:"extensions"`

	// ExtensionsSet reports whether Extensions came from a flag, the
	// environment or a config file.
	ExtensionsSet bool `mapstructure:"-"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Setup registers defaults, config search paths and environment binding on v.
// If cfgFile is non-empty it is used instead of searching.
func Setup(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", appName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("extensions")

	v.SetDefault("output", DefaultOutput)
	v.SetDefault("format", DefaultFormat)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "") // empty means logging.DefaultLogPath
	v.SetDefault("logging.rotation.max_size", DefaultLogMaxSize)
	v.SetDefault("logging.rotation.max_age", DefaultLogMaxAge)
	v.SetDefault("logging.rotation.max_backups", DefaultLogMaxBackups)
	v.SetDefault("logging.rotation.daily", true)
}

// Read reads the config file into v. A missing file in the search paths is
// not an error; a missing explicit cfgFile is.
func Read(v *viper.Viper, cfgFile string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// Decode unmarshals v into a Config and expands ~ in paths.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		joinSliceHook,
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ExtensionsSet = v.IsSet("extensions")

	var err error
	if cfg.Output, err = ExpandPath(cfg.Output); err != nil {
		return nil, err
	}
	if cfg.Logging.Path, err = ExpandPath(cfg.Logging.Path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// joinSliceHook decodes a list into a string field by joining its elements
// with commas.
func joinSliceHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
		return data, nil
	}

	items := reflect.ValueOf(data)
	parts := make([]string, 0, items.Len())
	for i := range items.Len() {
		parts = append(parts, fmt.Sprint(items.Index(i).Interface()))
	}
	return strings.Join(parts, ","), nil
}

// Load builds a Config from a fresh viper instance.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/fileowners/config.yaml
//   - $HOME/.config/fileowners/config.yaml
//
// Environment variables are prefixed with FILEOWNERS_ (e.g. FILEOWNERS_FORMAT).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	Setup(v, cfgFile)
	if err := Read(v, cfgFile); err != nil {
		return nil, err
	}
	return Decode(v)
}

// ConfigDir returns the configuration directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), fileName)
}

// StateDir returns $XDG_STATE_HOME/fileowners/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// WriteDefault writes a commented default config file to path if none
// exists. It reports whether a file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	var components strings.Builder
	for _, name := range []string{"listing", "owner", "prompt", "report", "scan"} {
		fmt.Fprintf(&components, "    %s: %s\n", name, DefaultComponents[name])
	}

	defaultConfig := fmt.Sprintf(`# fileowners configuration

# Report file, relative to the working directory
output: %s

# Report format: tsv, csv, json, yaml
format: %s

# Extensions to search for, comma separated. Leave unset to be prompted.
# extensions: .pdf, .txt

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: %s
  # Log file path (empty means use default: %s)
  path: ""
  rotation:
    max_size: %s
    max_age: %d       # days
    max_backups: %d
    daily: true
  # Per-component log levels
  components:
%s`, DefaultOutput, DefaultFormat, DefaultLogLevel,
		filepath.Join(StateDir(), appName+".log"),
		DefaultLogMaxSize, DefaultLogMaxAge, DefaultLogMaxBackups,
		components.String())

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}

	return true, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
