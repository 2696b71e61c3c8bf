//go:build unix

package owner

import (
	"os"
	"os/user"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

type systemLookup struct {
	hostname func() (string, error)
}

// NewSystemLookup returns the LookupService for unix hosts. The owner uid is
// read with stat(2) and resolved through the user database; the domain is
// the short host name, the way Windows renders local accounts.
func NewSystemLookup() LookupService {
	return systemLookup{hostname: os.Hostname}
}

func (s systemLookup) Lookup(path string) (Identity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Identity{}, &LookupError{Path: path, Op: OpStat, Err: &os.PathError{Op: "stat", Path: path, Err: err}}
	}

	uid := strconv.FormatUint(uint64(st.Uid), 10)
	u, err := user.LookupId(uid)
	if err != nil {
		return Identity{}, &LookupError{Path: path, Op: OpAccountLookup, Err: err}
	}

	host, err := s.hostname()
	if err != nil {
		return Identity{}, &LookupError{Path: path, Op: OpAccountLookup, Err: err}
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}

	return Identity{Domain: host, Account: u.Username, SID: uid}, nil
}
