package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/fileowners/pkg/owners/config"
	"github.com/jamesainslie/fileowners/pkg/owners/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage fileowners configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/fileowners/config.yaml
  2. ~/.config/fileowners/config.yaml

Environment variables override config file settings using the FILEOWNERS_ prefix:
  FILEOWNERS_FORMAT=csv
  FILEOWNERS_EXTENSIONS=.pdf,.docx
  FILEOWNERS_LOGGING_LEVEL=debug`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configFilePath is the explicit --config file or the default location.
func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	if cfgErr != nil {
		return cfgErr
	}
	cfg, err := config.Decode(viper.GetViper())
	if err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "Config file: %s\n\n", used)
	} else {
		fmt.Fprintln(w, "Config file: (using defaults, no file found)")
		fmt.Fprintln(w)
	}

	extensions := "(prompt)"
	if cfg.ExtensionsSet {
		extensions = fmt.Sprintf("%q", cfg.Extensions)
	}
	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}

	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "output:               %s\n", cfg.Output)
	fmt.Fprintf(w, "format:               %s\n", cfg.Format)
	fmt.Fprintf(w, "extensions:           %s\n", extensions)
	fmt.Fprintf(w, "logging.level:        %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "logging.path:         %s\n", logPath)
	fmt.Fprintf(w, "logging.rotation:     max_size=%s max_age=%dd max_backups=%d daily=%t\n",
		cfg.Logging.Rotation.MaxSize, cfg.Logging.Rotation.MaxAge,
		cfg.Logging.Rotation.MaxBackups, cfg.Logging.Rotation.Daily)

	if len(cfg.Logging.Components) > 0 {
		names := make([]string, 0, len(cfg.Logging.Components))
		for name := range cfg.Logging.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "logging.components.%-8s %s\n", name+":", cfg.Logging.Components[name])
		}
	}

	fmt.Fprintln(w, "\nEnvironment Overrides:")
	fmt.Fprintln(w, "----------------------")
	envVars := []string{
		config.EnvPrefix + "_OUTPUT",
		config.EnvPrefix + "_FORMAT",
		config.EnvPrefix + "_EXTENSIONS",
		config.EnvPrefix + "_LOGGING_LEVEL",
		config.EnvPrefix + "_LOGGING_PATH",
	}

	anyOverrides := false
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			fmt.Fprintf(w, "%s=%s\n", name, val)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Fprintln(w, "(none)")
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFilePath()

	created, err := config.WriteDefault(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if !created {
		printInfo(cmd.OutOrStdout(), "Config file already exists: %s", path)
		return nil
	}
	printInfo(cmd.OutOrStdout(), "Created default config file: %s", path)
	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, _ []string) error {
	path := configFilePath()
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if _, err := os.Stat(path); err == nil {
		printVerbose(cmd.ErrOrStderr(), "File exists")
	} else if os.IsNotExist(err) {
		printVerbose(cmd.ErrOrStderr(), "File does not exist (will use defaults)")
	}

	return nil
}
