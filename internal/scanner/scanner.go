package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/reposcope/reposcope/internal/findings"
	"github.com/reposcope/reposcope/internal/rules"
	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/errors"
)

// Options holds per-invocation traversal settings.
type Options struct {
	ExcludeDirs       []string
	IncludeExtensions []string
	IncludeNames      []string
	MaxFileSizeBytes  int64
	MaxDepth          int
	Jobs              int
}

// OptionsFromConfig builds Options from the application configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ExcludeDirs:       cfg.Scanner.ExcludeDirs,
		IncludeExtensions: cfg.Scanner.IncludeExtensions,
		IncludeNames:      cfg.Scanner.IncludeNames,
		MaxFileSizeBytes:  cfg.Scanner.MaxFileSizeBytes,
		MaxDepth:          cfg.Scanner.MaxDepth,
		Jobs:              1,
	}
}

// Scanner walks a project tree and applies a compiled rule set to every
// eligible file. It holds no state between scans: scanning the same tree
// twice yields identical results.
type Scanner struct {
	ruleset *rules.RuleSet
	opts    Options
	logger  hclog.Logger

	excludeDirs map[string]struct{}
	includeExts map[string]struct{}
	includeName map[string]struct{}
}

// New creates a new Scanner instance with the provided rule set and options.
func New(ruleset *rules.RuleSet, opts Options, logger hclog.Logger) *Scanner {
	s := &Scanner{
		ruleset:     ruleset,
		opts:        opts,
		logger:      logger,
		excludeDirs: toSet(opts.ExcludeDirs),
		includeExts: toSet(opts.IncludeExtensions),
		includeName: toSet(opts.IncludeNames),
	}
	if s.opts.Jobs < 1 {
		s.opts.Jobs = 1
	}
	if s.opts.MaxDepth < 1 {
		s.opts.MaxDepth = config.DefaultMaxDepth
	}
	if s.opts.MaxFileSizeBytes < 1 {
		s.opts.MaxFileSizeBytes = config.DefaultMaxFileSizeBytes
	}
	return s
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// fileJob is one file selected by the walk, with its traversal index.
type fileJob struct {
	index   int
	relPath string
	absPath string
	size    int64
}

// fileOutcome is the matching result for one file.
type fileOutcome struct {
	index   int
	matches []rawMatch
	skip    *findings.SkippedFile
}

// rawMatch ties a finding to its rule for ordering and dedup decisions.
type rawMatch struct {
	ruleIndex int
	presence  bool
	finding   findings.Finding
}

// Scan walks root and returns the complete scan result.
func (s *Scanner) Scan(root string) (*findings.Result, error) {
	collector := findings.NewCollector()
	if err := s.ScanInto(root, collector); err != nil {
		return nil, err
	}
	return collector.Result(findings.NewMetadata(root)), nil
}

// ScanInto walks root and records findings and skips into the provided
// collector, so callers can combine several analyzers into one result. The
// only fatal condition is an unreadable or nonexistent root; every per-file
// problem is recorded as a skip and traversal continues.
func (s *Scanner) ScanInto(root string, collector *findings.Collector) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.NewNotFoundError(root, err.Error())
	}
	if !info.IsDir() {
		return errors.NewNotFoundError(root, "not a directory")
	}

	jobs, walkSkips := s.discoverFiles(root)
	s.logger.Debug("traversal complete", "files", len(jobs), "skipped", len(walkSkips))

	outcomes := s.matchFiles(jobs)

	for _, skip := range walkSkips {
		collector.Skip(skip.Path, skip.Reason)
	}
	for _, outcome := range outcomes {
		if outcome.skip != nil {
			collector.Skip(outcome.skip.Path, outcome.skip.Reason)
			continue
		}
		for _, m := range outcome.matches {
			collector.Add(m.finding, m.presence)
		}
	}

	return nil
}

// discoverFiles walks the tree, pruning excluded directories, bounding
// depth, and never following symbolic links.
func (s *Scanner) discoverFiles(root string) ([]fileJob, []findings.SkippedFile) {
	var jobs []fileJob
	var skips []findings.SkippedFile

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			skips = append(skips, findings.SkippedFile{Path: rel, Reason: fmt.Sprintf("access error: %v", err)})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, excluded := s.excludeDirs[d.Name()]; excluded {
				return fs.SkipDir
			}
			if depthOf(rel) >= s.opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		// WalkDir does not follow directory symlinks; skip file symlinks
		// too, to avoid reading outside the tree.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if !s.eligible(d.Name()) {
			return nil
		}

		var size int64
		if fi, infoErr := d.Info(); infoErr == nil {
			size = fi.Size()
		}

		jobs = append(jobs, fileJob{
			index:   len(jobs),
			relPath: rel,
			absPath: path,
			size:    size,
		})
		return nil
	})

	return jobs, skips
}

func depthOf(rel string) int {
	return 1 + strings.Count(rel, "/")
}

// eligible reports whether a file name is selected by extension or by the
// explicit name allowlist.
func (s *Scanner) eligible(name string) bool {
	if _, ok := s.includeName[name]; ok {
		return true
	}
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	_, ok := s.includeExts[ext]
	return ok
}

// matchFiles applies the rule set to every job. With Jobs > 1 the work fans
// out to a worker pool; each worker owns a private result list, and the
// merged outcomes are restored to traversal order, so parallel and serial
// scans produce identical output.
func (s *Scanner) matchFiles(jobs []fileJob) []fileOutcome {
	if s.opts.Jobs <= 1 || len(jobs) < 2 {
		outcomes := make([]fileOutcome, 0, len(jobs))
		for _, job := range jobs {
			outcomes = append(outcomes, s.matchFile(job))
		}
		return outcomes
	}

	jobCh := make(chan fileJob)
	outCh := make(chan fileOutcome)
	done := make(chan struct{})

	workers := s.opts.Jobs
	if workers > len(jobs) {
		workers = len(jobs)
	}

	for i := 0; i < workers; i++ {
		go func() {
			for job := range jobCh {
				outCh <- s.matchFile(job)
			}
		}()
	}

	outcomes := make([]fileOutcome, 0, len(jobs))
	go func() {
		for range jobs {
			outcomes = append(outcomes, <-outCh)
		}
		close(done)
	}()

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	<-done

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].index < outcomes[j].index
	})
	return outcomes
}

// matchFile reads one file and applies every rule. Read failures, binary
// content and oversized files become skip entries, never errors.
func (s *Scanner) matchFile(job fileJob) fileOutcome {
	outcome := fileOutcome{index: job.index}

	if job.size > s.opts.MaxFileSizeBytes {
		outcome.skip = &findings.SkippedFile{
			Path:   job.relPath,
			Reason: fmt.Sprintf("exceeds size limit (%d bytes)", job.size),
		}
		return outcome
	}

	data, err := os.ReadFile(job.absPath)
	if err != nil {
		outcome.skip = &findings.SkippedFile{
			Path:   job.relPath,
			Reason: fmt.Sprintf("read error: %v", err),
		}
		return outcome
	}
	if !utf8.Valid(data) || containsNUL(data) {
		outcome.skip = &findings.SkippedFile{
			Path:   job.relPath,
			Reason: "binary or non-UTF8 content",
		}
		return outcome
	}

	content := string(data)
	base := filepath.Base(job.relPath)
	for ri := range s.ruleset.Rules() {
		rule := &s.ruleset.Rules()[ri]
		if !rule.AppliesTo(base) {
			continue
		}
		for _, m := range rule.Apply(content) {
			outcome.matches = append(outcome.matches, rawMatch{
				ruleIndex: ri,
				presence:  rule.Mode == rules.ModePresence,
				finding: findings.Finding{
					Category:   rule.Category,
					Value:      m.Value,
					SourcePath: job.relPath,
					LineNumber: rules.LineOf(content, m.Offset),
					Confidence: rule.Confidence,
					RuleID:     rule.ID,
				},
			})
		}
	}
	return outcome
}

func containsNUL(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}
