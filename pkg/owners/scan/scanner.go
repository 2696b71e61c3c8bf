package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jamesainslie/fileowners/pkg/owners/listing"
	"github.com/jamesainslie/fileowners/pkg/owners/logging"
	"github.com/jamesainslie/fileowners/pkg/owners/types"
)

var logger = logging.Get("scan")

// Scanner inventories the owners of matching directory entries.
type Scanner struct {
	opts Options
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	opts.Validate()
	return &Scanner{opts: opts}
}

// Run lists the entries of req.Directory that match req.Extensions and
// resolves each owner sequentially. Lookup failures become UnknownOwner
// records and never stop the run. Listing errors and context cancellation
// do; a cancelled run returns no report.
func (s *Scanner) Run(ctx context.Context, req types.ScanRequest) (*types.Report, error) {
	start := time.Now()

	names, err := listing.Match(req.Directory, req.Extensions)
	if err != nil {
		return nil, err
	}

	report := &types.Report{
		Directory: req.Directory,
		Records:   make([]types.OwnershipRecord, 0, len(names)),
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			logger.Warn("scan interrupted", "dir", req.Directory, "done", len(report.Records), "total", len(names))
			return nil, fmt.Errorf("scan interrupted: %w", err)
		}

		s.opts.OnFile(name)
		res := s.opts.Resolver.Resolve(filepath.Join(req.Directory, name))
		report.Records = append(report.Records, types.OwnershipRecord{
			FileName: name,
			Owner:    res.Owner(),
		})
	}

	logger.Info("scan complete",
		"dir", req.Directory,
		"files", len(report.Records),
		"unresolved", report.Unresolved(),
		"duration", time.Since(start),
	)
	return report, nil
}
