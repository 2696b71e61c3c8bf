//go:build windows

package owner

import "golang.org/x/sys/windows"

type systemLookup struct{}

// NewSystemLookup returns the LookupService backed by the Windows security
// APIs: the owner-only security descriptor, its owner SID, and the account
// name lookup on the local system.
func NewSystemLookup() LookupService {
	return systemLookup{}
}

func (systemLookup) Lookup(path string) (Identity, error) {
	sd, err := windows.GetNamedSecurityInfo(path, windows.SE_FILE_OBJECT, windows.OWNER_SECURITY_INFORMATION)
	if err != nil {
		return Identity{}, &LookupError{Path: path, Op: OpSecurityDescriptor, Err: err}
	}

	sid, _, err := sd.Owner()
	if err != nil {
		return Identity{}, &LookupError{Path: path, Op: OpOwner, Err: err}
	}
	if sid == nil {
		return Identity{}, &LookupError{Path: path, Op: OpOwner, Err: ErrNoOwner}
	}

	account, domain, _, err := sid.LookupAccount("")
	if err != nil {
		return Identity{}, &LookupError{Path: path, Op: OpAccountLookup, Err: err}
	}

	return Identity{Domain: domain, Account: account, SID: sid.String()}, nil
}
