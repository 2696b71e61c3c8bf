// Package report writes ownership reports in various formats
// (tsv, csv, json, yaml).
//
// The package uses a registry pattern so formats can be selected at runtime.
// The default format is the tab-separated table with a "Filename\tOwner"
// header line.
//
// Basic usage:
//
//	n, err := report.Write("file_owners.txt", r, report.DefaultFormat)
//	if err != nil {
//	    log.Fatal(err)
//	}
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/fileowners/pkg/owners/logging"
	"github.com/jamesainslie/fileowners/pkg/owners/types"
)

// logger is the package-level logger for report operations.
var logger = logging.Get("report")

// DefaultFormat is the format written when none is configured.
const DefaultFormat = "tsv"

// ErrUnknownFormat is returned when no formatter is registered under a name.
var ErrUnknownFormat = errors.New("unknown report format")

// Formatter is the interface that all report formatters must implement.
type Formatter interface {
	// Format writes the formatted report to the buffer.
	Format(w *bytes.Buffer, r *types.Report) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory to the registry.
// It will replace any existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

// Write formats r and writes it to path, replacing any existing file.
// It returns the number of bytes written.
func Write(path string, r *types.Report, format string) (int, error) {
	if format == "" {
		format = DefaultFormat
	}

	formatter, err := Get(format)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, r); err != nil {
		return 0, fmt.Errorf("failed to format report: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("report written",
		"path", path,
		"format", format,
		"records", len(r.Records),
		"size", humanize.IBytes(uint64(buf.Len())))

	return buf.Len(), nil
}
