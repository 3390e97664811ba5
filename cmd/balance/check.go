package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/praetorian-inc/balance/pkg/config"
	"github.com/praetorian-inc/balance/pkg/enum"
	"github.com/praetorian-inc/balance/pkg/scanner"
	"github.com/praetorian-inc/balance/pkg/store"
	"github.com/praetorian-inc/balance/pkg/types"
	"github.com/spf13/cobra"
)

var (
	checkConfigPath    string
	checkOutputFormat  string
	checkColor         string
	checkExtensions    []string
	checkIncludeHidden bool
	checkFollowLinks   bool
	checkMaxFileSize   int64
	checkOutputPath    string
	checkIncremental   bool
	checkWorkers       int
)

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Check bracket balance in a file or directory",
	Long: `Check a single file, or every text file under a directory, for
unbalanced brackets.

Exit status is 0 when every file is balanced, 1 when any file has a
bracket error and 2 when a file cannot be read or the arguments are invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd)
}

// addCheckFlags binds the check flags to cmd. The root command does not
// carry them, so "balance <file>" uses the defaults and any config file.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to YAML config file (default: .balance.yaml if present)")
	cmd.Flags().StringVar(&checkOutputFormat, "format", config.FormatHuman, "Output format: human, json, sarif")
	cmd.Flags().StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
	cmd.Flags().StringSliceVar(&checkExtensions, "ext", nil, "Only check files with these extensions in directory mode (comma-separated)")
	cmd.Flags().BoolVar(&checkIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	cmd.Flags().BoolVar(&checkFollowLinks, "follow-symlinks", false, "Check files reached through symbolic links in directory mode")
	cmd.Flags().Int64Var(&checkMaxFileSize, "max-file-size", config.DefaultMaxFileSize, "Maximum file size to check in directory mode (bytes)")
	cmd.Flags().StringVar(&checkOutputPath, "output", "", "Result database path (default: in-memory)")
	cmd.Flags().BoolVar(&checkIncremental, "incremental", false, "Reuse stored results for unchanged content")
	cmd.Flags().IntVar(&checkWorkers, "workers", 0, "Parallel file readers in directory mode (0 = number of CPUs)")
}

// checkOptions is the effective configuration after merging the config file
// and command-line flags.
type checkOptions struct {
	format        string
	color         string
	extensions    []string
	includeHidden bool
	followLinks   bool
	maxFileSize   int64
	output        string
	incremental   bool
	workers       int
}

// checkRun accumulates results across goroutines.
type checkRun struct {
	core   *scanner.Core
	store  store.Store
	logger *cliLogger
	reuse  bool

	mu       sync.Mutex
	reports  []*types.FileReport
	failures []error
	skipped  int
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	logger := newLogger(cmd.ErrOrStderr(), verbose, quiet)

	opts, err := resolveCheckOptions(cmd, logger)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	info, err := os.Stat(target)
	if err != nil {
		return &exitError{code: exitFailure, err: &types.InputError{Path: target, Err: err}}
	}

	s, err := store.New(store.Config{Path: opts.output})
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("creating store: %w", err)}
	}

	run := &checkRun{
		core:   scanner.NewCore(s, logger),
		store:  s,
		logger: logger,
		reuse:  opts.incremental,
	}
	defer run.core.Close()

	if info.IsDir() {
		enumerator := enum.NewFilesystemEnumerator(enum.Config{
			Root:           target,
			IncludeHidden:  opts.includeHidden,
			FollowSymlinks: opts.followLinks,
			MaxFileSize:    opts.maxFileSize,
			Extensions:     opts.extensions,
			Workers:        opts.workers,
			OnReadError:    run.fail,
		})
		err = enumerator.Enumerate(context.Background(), run.check)
	} else {
		var content []byte
		content, err = enum.ReadFile(target)
		if err == nil {
			err = run.check(content, types.HashContent(content), target)
		} else if types.IsInputError(err) {
			run.failures = append(run.failures, err)
			err = nil
		}
	}
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("checking %s: %w", target, err)}
	}

	sort.Slice(run.reports, func(i, j int) bool { return run.reports[i].Path < run.reports[j].Path })
	sort.Slice(run.failures, func(i, j int) bool { return run.failures[i].Error() < run.failures[j].Error() })

	var summary types.Summary
	for _, r := range run.reports {
		summary.Add(r.Result)
	}
	summary.InputErrors = len(run.failures)
	summary.Skipped = run.skipped

	if opts.output != "" {
		logger.Info("Results stored in: %s", opts.output)
	}

	out := output{
		format:   opts.format,
		color:    opts.color,
		multi:    info.IsDir(),
		reports:  run.reports,
		failures: run.failures,
		summary:  summary,
	}
	if err := out.render(cmd); err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	switch {
	case summary.InputErrors > 0:
		return &exitError{code: exitFailure}
	case summary.Failed() > 0:
		return &exitError{code: exitFindings}
	}
	return nil
}

// check scans one file. It is the enumeration callback and may run
// concurrently.
func (r *checkRun) check(content []byte, id types.ContentHash, path string) error {
	if r.reuse {
		prev, err := r.previous(id)
		if err != nil {
			return fmt.Errorf("looking up %s: %w", path, err)
		}
		if prev != nil {
			prev.Path = path
			if err := r.core.Record(prev); err != nil {
				return err
			}
			r.logger.Log("%s: unchanged, reusing stored result", path)
			r.mu.Lock()
			r.reports = append(r.reports, prev)
			r.skipped++
			r.mu.Unlock()
			return nil
		}
	}

	report, err := r.core.Scan(scanner.ContentItem{Source: path, Content: content})
	if err != nil {
		var ie *types.InputError
		if errors.As(err, &ie) {
			r.fail(ie)
			return nil
		}
		return err
	}

	r.mu.Lock()
	r.reports = append(r.reports, report)
	r.mu.Unlock()
	return nil
}

// previous returns the stored report for content scanned by an earlier run.
// A known blob can lack a report when its path has since been re-checked with
// different content.
func (r *checkRun) previous(id types.ContentHash) (*types.FileReport, error) {
	exists, err := r.store.BlobExists(id)
	if err != nil || !exists {
		return nil, err
	}
	return r.store.GetResultByContent(id)
}

func (r *checkRun) fail(err *types.InputError) {
	r.mu.Lock()
	r.failures = append(r.failures, err)
	r.mu.Unlock()
}

// resolveCheckOptions layers explicitly set flags over the config file.
func resolveCheckOptions(cmd *cobra.Command, logger *cliLogger) (*checkOptions, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, used, err := config.Resolve(checkConfigPath, wd)
	if err != nil {
		return nil, err
	}
	if used != "" {
		logger.Log("using config %s", used)
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		cfg.Format = checkOutputFormat
	}
	if changed("color") {
		cfg.Color = checkColor
	}
	if changed("ext") {
		cfg.Extensions = checkExtensions
	}
	if changed("include-hidden") {
		cfg.IncludeHidden = checkIncludeHidden
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = checkFollowLinks
	}
	if changed("max-file-size") {
		cfg.MaxFileSize = checkMaxFileSize
	}
	if changed("output") {
		cfg.Output = checkOutputPath
	}
	if changed("workers") {
		cfg.Workers = checkWorkers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &checkOptions{
		format:        cfg.Format,
		color:         cfg.Color,
		extensions:    cfg.Extensions,
		includeHidden: cfg.IncludeHidden,
		followLinks:   cfg.FollowSymlinks,
		maxFileSize:   cfg.MaxFileSize,
		output:        cfg.Output,
		incremental:   checkIncremental,
		workers:       cfg.Workers,
	}, nil
}
