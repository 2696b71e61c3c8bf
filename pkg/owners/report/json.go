package report

import (
	"bytes"
	"encoding/json"

	"github.com/jamesainslie/fileowners/pkg/owners/types"
)

// jsonOutput represents the full JSON document.
type jsonOutput struct {
	Directory  string       `json:"directory"`
	Records    []jsonRecord `json:"records"`
	Total      int          `json:"total"`
	Unresolved int          `json:"unresolved"`
}

// jsonRecord represents one row in JSON output.
type jsonRecord struct {
	Filename string `json:"filename"`
	Owner    string `json:"owner"`
}

// JSONFormatter formats the report as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	records := make([]jsonRecord, len(r.Records))
	for i, rec := range r.Records {
		records[i] = jsonRecord{Filename: rec.FileName, Owner: rec.Owner}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonOutput{
		Directory:  r.Directory,
		Records:    records,
		Total:      len(records),
		Unresolved: r.Unresolved(),
	})
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
