// Package types provides core data types for the fileowners auditing tool.
// It includes the scan request, the per-file ownership record and the report
// that collects them in directory-listing order.
package types

import "strings"

// UnknownOwner is recorded when a file's owner could not be resolved.
const UnknownOwner = "Unknown Owner"

// DefaultReportName is the report file written to the working directory.
const DefaultReportName = "file_owners.txt"

// ScanRequest describes a single inventory run.
// It is built once before the scan starts and is not modified afterwards.
type ScanRequest struct {
	// Directory is the directory whose top-level entries are inventoried.
	Directory string `json:"directory" yaml:"directory"`

	// Extensions are lower-cased suffixes matched against lower-cased names.
	// An empty string matches every entry.
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// NewScanRequest trims and lower-cases the given extensions.
func NewScanRequest(dir string, extensions []string) ScanRequest {
	exts := make([]string, len(extensions))
	for i, ext := range extensions {
		exts[i] = strings.ToLower(strings.TrimSpace(ext))
	}
	return ScanRequest{Directory: dir, Extensions: exts}
}

// OwnershipRecord pairs a file name with its owner.
type OwnershipRecord struct {
	// FileName is the entry name relative to the scanned directory.
	FileName string `json:"filename" yaml:"filename"`

	// Owner is "DOMAIN\Name" or UnknownOwner.
	Owner string `json:"owner" yaml:"owner"`
}

// Resolved reports whether the owner was looked up successfully.
func (r OwnershipRecord) Resolved() bool {
	return r.Owner != UnknownOwner
}

// Report is the ordered result of a scan.
type Report struct {
	// Directory is the directory that was scanned.
	Directory string `json:"directory" yaml:"directory"`

	// Records are in directory-listing order.
	Records []OwnershipRecord `json:"records" yaml:"records"`
}

// Unresolved returns the number of records carrying UnknownOwner.
func (r *Report) Unresolved() int {
	n := 0
	for _, rec := range r.Records {
		if !rec.Resolved() {
			n++
		}
	}
	return n
}
