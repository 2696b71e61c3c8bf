//go:build !unix && !windows

package owner

type systemLookup struct{}

// NewSystemLookup returns a LookupService that always fails with
// ErrUnsupported.
func NewSystemLookup() LookupService {
	return systemLookup{}
}

func (systemLookup) Lookup(path string) (Identity, error) {
	return Identity{}, &LookupError{Path: path, Op: OpSecurityDescriptor, Err: ErrUnsupported}
}
