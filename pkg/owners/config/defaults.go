// Package config provides configuration management for fileowners.
package config

// Default configuration values for fileowners.
const (
	// DefaultOutput is the report path, relative to the working directory.
	DefaultOutput = "file_owners.txt"

	// DefaultFormat is the report format.
	DefaultFormat = "tsv"

	// DefaultLogLevel is the log file level.
	DefaultLogLevel = "info"

	// DefaultLogMaxSize is the size at which the log file is rotated.
	DefaultLogMaxSize = "10MiB"

	// DefaultLogMaxAge is the number of days rotated logs are kept.
	DefaultLogMaxAge = 30

	// DefaultLogMaxBackups is the number of rotated logs kept.
	DefaultLogMaxBackups = 5

	// EnvPrefix prefixes environment overrides, e.g. FILEOWNERS_FORMAT.
	EnvPrefix = "FILEOWNERS"

	appName  = "fileowners"
	fileName = "config.yaml"
)

// DefaultComponents are the per-component log levels written by WriteDefault.
var DefaultComponents = map[string]string{
	"listing": "info",
	"owner":   "info",
	"report":  "info",
	"scan":    "info",
	"prompt":  "info",
}
