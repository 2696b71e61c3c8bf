package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScanRequest(t *testing.T) {
	req := NewScanRequest("/data", []string{" .PDF", ".txt ", ""})

	assert.Equal(t, "/data", req.Directory)
	assert.Equal(t, []string{".pdf", ".txt", ""}, req.Extensions)
}

func TestNewScanRequestDoesNotAliasInput(t *testing.T) {
	in := []string{".DOC"}
	req := NewScanRequest("/data", in)
	req.Extensions[0] = ".xls"

	assert.Equal(t, ".DOC", in[0])
}

func TestReportUnresolved(t *testing.T) {
	tests := []struct {
		name    string
		records []OwnershipRecord
		want    int
	}{
		{name: "empty", records: nil, want: 0},
		{
			name: "all resolved",
			records: []OwnershipRecord{
				{FileName: "a.pdf", Owner: `CORP\alice`},
				{FileName: "b.pdf", Owner: `CORP\bob`},
			},
			want: 0,
		},
		{
			name: "mixed",
			records: []OwnershipRecord{
				{FileName: "a.pdf", Owner: `CORP\alice`},
				{FileName: "b.pdf", Owner: UnknownOwner},
				{FileName: "c.pdf", Owner: UnknownOwner},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{Records: tt.records}
			assert.Equal(t, tt.want, r.Unresolved())
		})
	}
}
