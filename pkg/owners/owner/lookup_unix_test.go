//go:build unix

package owner

import (
	"errors"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemLookup_CurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("current user not resolvable: %v", err)
	}

	path := filepath.Join(t.TempDir(), "owned.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	id, err := NewSystemLookup().Lookup(path)
	require.NoError(t, err)

	assert.Equal(t, current.Username, id.Account)
	assert.Equal(t, current.Uid, id.SID)
	assert.NotEmpty(t, id.Domain)
	assert.False(t, strings.Contains(id.Domain, "."), "domain is the short host name")
}

func TestSystemLookup_MissingFile(t *testing.T) {
	_, err := NewSystemLookup().Lookup(filepath.Join(t.TempDir(), "gone.txt"))

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, OpStat, lerr.Op)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSystemLookup_ShortHostName(t *testing.T) {
	if _, err := user.Current(); err != nil {
		t.Skipf("current user not resolvable: %v", err)
	}
	path := filepath.Join(t.TempDir(), "owned.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	lookup := systemLookup{hostname: func() (string, error) { return "build01.corp.example.com", nil }}
	id, err := lookup.Lookup(path)
	require.NoError(t, err)

	assert.Equal(t, "build01", id.Domain)
}

func TestSystemLookup_HostnameFailure(t *testing.T) {
	if _, err := user.Current(); err != nil {
		t.Skipf("current user not resolvable: %v", err)
	}
	path := filepath.Join(t.TempDir(), "owned.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cause := errors.New("no hostname")
	lookup := systemLookup{hostname: func() (string, error) { return "", cause }}
	_, err := lookup.Lookup(path)

	assert.ErrorIs(t, err, cause)
}
