package report

import (
	"bytes"

	"github.com/jamesainslie/fileowners/pkg/owners/types"
	"gopkg.in/yaml.v3"
)

// yamlOutput represents the full YAML document.
type yamlOutput struct {
	Directory  string       `yaml:"directory"`
	Records    []yamlRecord `yaml:"records"`
	Total      int          `yaml:"total"`
	Unresolved int          `yaml:"unresolved"`
}

// yamlRecord represents one row in YAML output.
type yamlRecord struct {
	Filename string `yaml:"filename"`
	Owner    string `yaml:"owner"`
}

// YAMLFormatter formats the report as YAML.
// It produces the same structure as JSONFormatter.
type YAMLFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, r *types.Report) error {
	records := make([]yamlRecord, len(r.Records))
	for i, rec := range r.Records {
		records[i] = yamlRecord{Filename: rec.FileName, Owner: rec.Owner}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlOutput{
		Directory:  r.Directory,
		Records:    records,
		Total:      len(records),
		Unresolved: r.Unresolved(),
	}); err != nil {
		return err
	}
	return encoder.Close()
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
