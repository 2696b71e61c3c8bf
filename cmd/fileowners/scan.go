package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/fileowners/pkg/owners/config"
	"github.com/jamesainslie/fileowners/pkg/owners/listing"
	"github.com/jamesainslie/fileowners/pkg/owners/logging"
	"github.com/jamesainslie/fileowners/pkg/owners/owner"
	"github.com/jamesainslie/fileowners/pkg/owners/prompt"
	"github.com/jamesainslie/fileowners/pkg/owners/report"
	"github.com/jamesainslie/fileowners/pkg/owners/scan"
	"github.com/jamesainslie/fileowners/pkg/owners/types"
)

// runScan is the root command handler.
func runScan(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	cfg, err := config.Decode(viper.GetViper())
	if err != nil {
		return err
	}

	dir, err := config.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	job := scanJob{
		dir:      dir,
		output:   cfg.Output,
		format:   cfg.Format,
		prompter: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		lookup:   owner.NewSystemLookup(),
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}
	if cfg.ExtensionsSet {
		job.extensions = listing.ParseExtensions(cfg.Extensions)
		printVerbose(job.errOut, "Extensions from flags or config: %q", job.extensions)
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	_, err = job.run(ctx)
	return err
}

// interruptContext returns a context cancelled by the first SIGINT or
// SIGTERM. Once it is cancelled the default handling is restored, so a
// second signal terminates a run that is stuck in a blocking call.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

// scanJob is one inventory run with its collaborators resolved.
type scanJob struct {
	dir    string
	output string
	format string

	// extensions is nil when the user must be asked.
	extensions []string
	prompter   prompt.Prompter

	lookup owner.LookupService
	out    io.Writer
	errOut io.Writer
}

// run asks for extensions if needed, scans, and writes the report. It
// returns the absolute report path.
func (j scanJob) run(ctx context.Context) (string, error) {
	logger := logging.Get("cli").With("run", runID)

	if j.format == "" {
		j.format = report.DefaultFormat
	}
	// Reject a bad format before any owner is looked up.
	if _, err := report.Get(j.format); err != nil {
		return "", err
	}

	dest, err := filepath.Abs(j.output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	exts := j.extensions
	if exts == nil {
		answer, err := j.ask(ctx)
		if err != nil {
			return "", fmt.Errorf("reading extensions: %w", err)
		}
		exts = listing.ParseExtensions(answer)
	}

	req := types.NewScanRequest(j.dir, exts)
	logger.Info("scan requested", "dir", req.Directory, "extensions", req.Extensions, "output", dest, "format", j.format)

	s := scan.New(scan.Options{
		Resolver: owner.NewResolver(j.lookup, owner.WithDiagnostics(j.errOut)),
		OnFile: func(name string) {
			printInfo(j.out, "Processing file: %s", name)
		},
	})

	rep, err := s.Run(ctx, req)
	if err != nil {
		return "", err
	}

	if _, err := report.Write(dest, rep, j.format); err != nil {
		return "", err
	}

	if n := rep.Unresolved(); n > 0 {
		logger.Warn("some owners could not be resolved", "unresolved", n, "total", len(rep.Records))
	}
	printInfo(j.out, "%s %s", successStyle.Render("File owner information saved to:"), dest)
	return dest, nil
}

type promptResult struct {
	text string
	err  error
}

// ask runs the prompt and gives up when ctx is cancelled. The abandoned
// read finishes in the background.
func (j scanJob) ask(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan promptResult, 1)
	go func() {
		text, err := j.prompter.Ask(prompt.Question)
		done <- promptResult{text: text, err: err}
	}()

	select {
	case a := <-done:
		return a.text, a.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
