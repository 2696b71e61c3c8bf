// Package owner resolves the operating-system owner of a file.
//
// The platform query is hidden behind LookupService so the fail-soft policy
// in Resolver can be exercised with fakes:
//
//	r := owner.NewResolver(owner.NewSystemLookup())
//	res := r.Resolve(`C:\data\report.pdf`)
//	fmt.Println(res.Owner()) // CORP\alice, or "Unknown Owner"
package owner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jamesainslie/fileowners/pkg/owners/logging"
	"github.com/jamesainslie/fileowners/pkg/owners/types"
)

var logger = logging.Get("owner")

// ErrUnsupported is returned by the system lookup on platforms without a
// file ownership API.
var ErrUnsupported = errors.New("file ownership lookup is not supported on this platform")

// ErrNoOwner is returned when the security descriptor carries no owner.
var ErrNoOwner = errors.New("security descriptor has no owner")

// Lookup steps, used as LookupError.Op.
const (
	OpSecurityDescriptor = "security descriptor"
	OpOwner              = "owner"
	OpAccountLookup      = "account lookup"
	OpStat               = "stat"
)

// Identity is a resolved owning principal.
type Identity struct {
	// Domain is the account's domain or, for local accounts, the host name.
	Domain string

	// Account is the account name.
	Account string

	// SID is the textual security identifier (a numeric uid on unix).
	SID string
}

// String renders the identity as DOMAIN\Name.
func (i Identity) String() string {
	return i.Domain + `\` + i.Account
}

// LookupService queries the host for the owner of a path.
type LookupService interface {
	Lookup(path string) (Identity, error)
}

// LookupFunc adapts a function to LookupService.
type LookupFunc func(path string) (Identity, error)

// Lookup calls f(path).
func (f LookupFunc) Lookup(path string) (Identity, error) {
	return f(path)
}

// LookupError records which step of an owner lookup failed.
type LookupError struct {
	Path string
	Op   string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Result is the outcome of resolving one path.
// Exactly one of Identity and Err is meaningful.
type Result struct {
	Path     string
	Identity Identity
	Err      error
}

// Resolved reports whether the lookup succeeded end to end.
func (r Result) Resolved() bool {
	return r.Err == nil
}

// Owner returns DOMAIN\Name, or types.UnknownOwner when unresolved.
func (r Result) Owner() string {
	if !r.Resolved() {
		return types.UnknownOwner
	}
	return r.Identity.String()
}

// Resolver applies the fail-soft policy around a LookupService.
type Resolver struct {
	lookup LookupService
	diag   io.Writer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDiagnostics sets where failure lines are written. Defaults to stderr.
func WithDiagnostics(w io.Writer) ResolverOption {
	return func(r *Resolver) {
		if w == nil {
			w = io.Discard
		}
		r.diag = w
	}
}

// NewResolver creates a Resolver around lookup.
func NewResolver(lookup LookupService, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		lookup: lookup,
		diag:   os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up the owner of path exactly once. It never returns an
// error: failures are reported on the diagnostic writer and carried in
// Result.Err.
func (r *Resolver) Resolve(path string) Result {
	id, err := r.safeLookup(path)
	if err == nil && id.Account == "" {
		err = &LookupError{Path: path, Op: OpAccountLookup, Err: ErrNoOwner}
	}

	if err != nil {
		fmt.Fprintf(r.diag, "Error retrieving owner for %s: %v\n", path, err)
		logger.FileOnly().Warn("owner lookup failed", "path", path, "err", err)
		return Result{Path: path, Err: err}
	}

	logger.Debug("owner resolved", "path", path, "owner", id.String(), "sid", id.SID)
	return Result{Path: path, Identity: id}
}

// safeLookup converts a panicking LookupService into an error.
func (r *Resolver) safeLookup(path string) (id Identity, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("owner lookup panicked: %v", p)
		}
	}()
	return r.lookup.Lookup(path)
}
