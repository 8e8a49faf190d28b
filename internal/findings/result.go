package findings

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SkippedFile records a file the scan could not read, with the reason.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// GitMetadata describes the target tree when it is a git work tree.
type GitMetadata struct {
	Branch *string `json:"branch,omitempty"`
	Commit *string `json:"commit,omitempty"`
	Remote *string `json:"remote,omitempty"`
}

// Metadata describes one scan invocation.
type Metadata struct {
	Root      string       `json:"root"`
	RunID     string       `json:"run_id"`
	StartedAt time.Time    `json:"started_at"`
	Git       *GitMetadata `json:"git,omitempty"`
}

// NewMetadata creates scan metadata with a fresh run id.
func NewMetadata(root string) Metadata {
	return Metadata{
		Root:      root,
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}

// Result is the full set of findings from one invocation, grouped by
// category, plus the skip report.
type Result struct {
	Meta     Metadata      `json:"meta"`
	Findings []Finding     `json:"findings"`
	Skipped  []SkippedFile `json:"skipped_files"`
}

// ByCategory returns findings grouped by category, preserving the stored
// order within each group.
func (r *Result) ByCategory() map[Category][]Finding {
	grouped := make(map[Category][]Finding)
	for _, f := range r.Findings {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	return grouped
}

// Collector accumulates findings while enforcing the dedup invariants:
// at most one finding per (category, value, source path), and for
// presence-mode findings at most one per (category, value) across all files.
type Collector struct {
	seenFile     map[string]struct{}
	seenPresence map[string]struct{}
	ordered      []Finding
	skipped      []SkippedFile
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		seenFile:     make(map[string]struct{}),
		seenPresence: make(map[string]struct{}),
	}
}

// Add records a finding unless the dedup invariants suppress it. The
// presence flag selects cross-file deduplication.
func (c *Collector) Add(f Finding, presence bool) {
	if presence {
		key := fmt.Sprintf("%s|%s", f.Category, f.Value)
		if _, ok := c.seenPresence[key]; ok {
			return
		}
		c.seenPresence[key] = struct{}{}
	}

	key := fmt.Sprintf("%s|%s|%s", f.Category, f.Value, f.SourcePath)
	if _, ok := c.seenFile[key]; ok {
		return
	}
	c.seenFile[key] = struct{}{}

	c.ordered = append(c.ordered, f)
}

// Skip records a file excluded from matching.
func (c *Collector) Skip(path, reason string) {
	c.skipped = append(c.skipped, SkippedFile{Path: path, Reason: reason})
}

// Result materializes the collected findings, grouped by category with
// discovery order preserved within each group.
func (c *Collector) Result(meta Metadata) *Result {
	rank := make(map[Category]int, len(Categories()))
	for i, cat := range Categories() {
		rank[cat] = i
	}

	out := make([]Finding, len(c.ordered))
	copy(out, c.ordered)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Category] < rank[out[j].Category]
	})

	return &Result{
		Meta:     meta,
		Findings: out,
		Skipped:  append([]SkippedFile(nil), c.skipped...),
	}
}
