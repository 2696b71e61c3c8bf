// Package listing selects the top-level entries of a directory whose names
// end with one of a set of extensions.
package listing

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/fileowners/pkg/owners/logging"
)

var logger = logging.Get("listing")

// ErrNotDirectory is returned when the scan path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ParseExtensions splits a comma-separated answer into extensions.
// Each token is trimmed and lower-cased. Empty tokens are kept, so an
// empty answer yields a single "" which matches every entry.
func ParseExtensions(input string) []string {
	parts := strings.Split(input, ",")
	exts := make([]string, len(parts))
	for i, p := range parts {
		exts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return exts
}

// Matches reports whether name ends with any of the extensions,
// comparing lower-cased forms.
func Matches(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Match returns the names of the immediate entries of dir that match one of
// the extensions, in listing order. Subdirectories are matched by name like
// any other entry but are never descended into.
func Match(dir string, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory does not exist: %s: %w", dir, err)
		}
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry.Name(), extensions) {
			names = append(names, entry.Name())
		}
	}

	logger.Debug("listed directory", "dir", dir, "entries", len(entries), "matched", len(names))
	return names, nil
}
