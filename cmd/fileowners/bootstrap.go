package main

import (
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/fileowners/pkg/owners/config"
	"github.com/jamesainslie/fileowners/pkg/owners/logging"
)

// runID tags every log line written by this process.
var runID = uuid.NewString()

// initializeLogging is the PersistentPreRunE hook. A broken config or an
// unwritable log file only produces a warning; commands that need the
// config report config errors themselves.
func initializeLogging(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Decode(viper.GetViper())
	if err != nil || cfgErr != nil {
		cfg = &config.Config{Logging: config.LoggingConfig{Level: config.DefaultLogLevel}}
	}

	logCfg := buildLoggingConfig(cfg.Logging, getVerbose())
	if cmd != nil {
		logCfg.Console = cmd.ErrOrStderr()
	}

	if err := logging.Init(logCfg); err != nil {
		if cmd != nil {
			printWarning(cmd.ErrOrStderr(), "logging disabled: %v", err)
		}
		return nil
	}

	args := []interface{}{"run", runID}
	if cmd != nil {
		args = append(args, "command", cmd.Name())
	}
	logging.Get("cli").Info("starting", args...)
	return nil
}

// buildLoggingConfig converts the config file's logging section.
// Verbose mirrors debug output to the console.
func buildLoggingConfig(lc config.LoggingConfig, verbose bool) logging.Config {
	cfg := logging.Config{
		Level:      lc.Level,
		Path:       lc.Path,
		Rotation:   parseRotationConfig(lc.Rotation),
		Components: lc.Components,
	}
	if cfg.Level == "" {
		cfg.Level = config.DefaultLogLevel
	}
	if verbose {
		cfg.Level = "debug"
		cfg.ConsoleLevel = "debug"
		cfg.Components = nil
	}
	return cfg
}

// parseRotationConfig converts a config.RotationConfig to logging.RotationConfig.
// An empty or invalid max_size falls back to the default.
func parseRotationConfig(rc config.RotationConfig) logging.RotationConfig {
	maxSize := logging.DefaultRotationConfig().MaxSize
	if rc.MaxSize != "" {
		if n, err := humanize.ParseBytes(rc.MaxSize); err == nil && n > 0 {
			maxSize = int64(n)
		}
	}

	return logging.RotationConfig{
		MaxSize:    maxSize,
		MaxAge:     rc.MaxAge,
		MaxBackups: rc.MaxBackups,
		Daily:      rc.Daily,
	}
}
