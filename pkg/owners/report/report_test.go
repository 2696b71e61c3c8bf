package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/fileowners/pkg/owners/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *types.Report {
	return &types.Report{
		Directory: "/srv/share",
		Records: []types.OwnershipRecord{
			{FileName: "a.PDF", Owner: `CORP\alice`},
			{FileName: "b.txt", Owner: types.UnknownOwner},
		},
	}
}

func TestTSVFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TSVFormatter{}).Format(&buf, sampleReport()))

	assert.Equal(t, "Filename\tOwner\na.PDF\tCORP\\alice\nb.txt\tUnknown Owner\n", buf.String())
}

func TestTSVFormatter_EmptyReportIsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TSVFormatter{}).Format(&buf, &types.Report{}))

	assert.Equal(t, "Filename\tOwner\n", buf.String())
}

func TestCSVFormatter_Format(t *testing.T) {
	r := sampleReport()
	r.Records = append(r.Records, types.OwnershipRecord{FileName: "with,comma.txt", Owner: `CORP\bob`})

	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Format(&buf, r))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Filename", "Owner"}, rows[0])
	assert.Equal(t, []string{"with,comma.txt", `CORP\bob`}, rows[3])
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleReport()))

	var got jsonOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/srv/share", got.Directory)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Unresolved)
	assert.Equal(t, "a.PDF", got.Records[0].Filename)
}

func TestJSONFormatter_EmptyRecordsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, &types.Report{Directory: "/x"}))

	assert.Contains(t, buf.String(), `"records": []`)
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, sampleReport()))

	var got yamlOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, types.UnknownOwner, got.Records[1].Owner)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("tsv", func() Formatter { return &TSVFormatter{} })

	f, err := reg.Get("tsv")
	require.NoError(t, err)
	assert.IsType(t, &TSVFormatter{}, f)

	_, err = reg.Get("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "tsv", "yaml"}, Available())
}

func TestWrite_DefaultFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.DefaultReportName)

	n, err := Write(path, sampleReport(), "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, "Filename\tOwner\na.PDF\tCORP\\alice\nb.txt\tUnknown Owner\n", string(data))
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.DefaultReportName)
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the report\n\n\n"), 0o644))

	_, err := Write(path, &types.Report{}, DefaultFormat)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Filename\tOwner\n", string(data))
}

func TestWrite_Idempotent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	_, err := Write(first, sampleReport(), DefaultFormat)
	require.NoError(t, err)
	_, err = Write(second, sampleReport(), DefaultFormat)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWrite_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	_, err := Write(path, sampleReport(), "xml")

	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.NoFileExists(t, path)
}

func TestWrite_UnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.txt")

	_, err := Write(path, sampleReport(), DefaultFormat)

	assert.ErrorIs(t, err, os.ErrNotExist)
}
