package report

import (
	"bytes"
	"encoding/csv"

	"github.com/jamesainslie/fileowners/pkg/owners/types"
)

// Header columns shared by the tabular formats.
const (
	headerFilename = "Filename"
	headerOwner    = "Owner"
)

// TSVFormatter formats the report as tab-separated values.
// The first line is always "Filename\tOwner", followed by one row per
// record. Fields are written verbatim.
type TSVFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *TSVFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	w.WriteString(headerFilename + "\t" + headerOwner + "\n")

	for _, rec := range r.Records {
		w.WriteString(rec.FileName)
		w.WriteByte('\t')
		w.WriteString(rec.Owner)
		w.WriteByte('\n')
	}

	return nil
}

func init() {
	Register("tsv", func() Formatter {
		return &TSVFormatter{}
	})
}

// Ensure TSVFormatter implements Formatter.
var _ Formatter = (*TSVFormatter)(nil)

// CSVFormatter formats the report as comma-separated values with proper quoting.
// It uses encoding/csv for RFC 4180 compliant output.
type CSVFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{headerFilename, headerOwner}); err != nil {
		return err
	}

	for _, rec := range r.Records {
		if err := writer.Write([]string{rec.FileName, rec.Owner}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func init() {
	Register("csv", func() Formatter {
		return &CSVFormatter{}
	})
}

// Ensure CSVFormatter implements Formatter.
var _ Formatter = (*CSVFormatter)(nil)
