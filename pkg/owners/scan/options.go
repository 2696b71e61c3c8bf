// Package scan runs the fileowners pipeline: list the matching entries of a
// directory, resolve the owner of each one in listing order, and collect the
// results into a report.
package scan

import (
	"github.com/jamesainslie/fileowners/pkg/owners/owner"
)

// Options configures a Scanner.
type Options struct {
	// Resolver resolves the owner of each matched entry.
	// If nil, a resolver around owner.NewSystemLookup is used.
	Resolver *owner.Resolver

	// OnFile is called with each entry name before its owner is resolved.
	// It may be nil.
	OnFile func(name string)
}

// Validate fills in defaults for unset options.
func (o *Options) Validate() {
	if o.Resolver == nil {
		o.Resolver = owner.NewResolver(owner.NewSystemLookup())
	}
	if o.OnFile == nil {
		o.OnFile = func(string) {}
	}
}
