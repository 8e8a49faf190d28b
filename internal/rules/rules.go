package rules

import (
	"regexp"
	"strings"

	"github.com/reposcope/reposcope/internal/findings"
	"github.com/reposcope/reposcope/pkg/shared/errors"
)

// Mode selects the dedup strategy for a rule's findings.
type Mode string

const (
	// ModePresence reports only whether a pattern occurs anywhere in the
	// target, collapsing matches across files.
	ModePresence Mode = "presence"
	// ModeEnumerate reports one finding per file where the pattern occurs.
	ModeEnumerate Mode = "enumerate"
)

// Rule is a single match rule mapped to a category and display value.
// Exactly one of Literal or Pattern is set. A rule with a Pattern and a
// Render function extracts one finding per distinct rendered submatch;
// otherwise a rule yields at most one finding per file, at the line of
// the first occurrence.
type Rule struct {
	ID              string
	Category        findings.Category
	Display         string
	Literal         string
	Pattern         string
	Mode            Mode
	CaseInsensitive bool
	Confidence      findings.Confidence

	// FileNames restricts the rule to files with one of these base names.
	// Empty means the rule runs against every scanned file.
	FileNames []string

	// Render maps regexp submatches to the finding value. Nil means the
	// rule's Display is the value.
	Render func(groups []string) string

	re *regexp.Regexp
}

// Match is one occurrence of a rule in a file's content.
type Match struct {
	Value  string
	Offset int
}

// RuleSet is an immutable, compiled collection of rules. It is built once
// at startup and passed explicitly into the scanner.
type RuleSet struct {
	Name  string
	rules []Rule
}

// Compile validates and compiles a rule table. A malformed regular
// expression is reported as a PatternError: it indicates a defect in the
// tool itself, and failing fast prevents silently incomplete scans.
func Compile(name string, table []Rule) (*RuleSet, error) {
	compiled := make([]Rule, len(table))
	for i, r := range table {
		if r.Pattern != "" {
			pattern := r.Pattern
			if r.CaseInsensitive {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, errors.NewPatternError(r.ID, r.Pattern, err)
			}
			r.re = re
		}
		if r.Confidence == "" {
			r.Confidence = defaultConfidence(r)
		}
		if r.Mode == "" {
			r.Mode = ModePresence
		}
		compiled[i] = r
	}
	return &RuleSet{Name: name, rules: compiled}, nil
}

func defaultConfidence(r Rule) findings.Confidence {
	if r.Literal != "" {
		return findings.ConfidenceLow
	}
	return findings.ConfidenceMedium
}

// Rules returns the compiled rules in table order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// AppliesTo reports whether the rule runs against a file with the given
// base name.
func (r *Rule) AppliesTo(name string) bool {
	if len(r.FileNames) == 0 {
		return true
	}
	for _, n := range r.FileNames {
		if n == name {
			return true
		}
	}
	return false
}

// Apply runs the rule against file content. Plain rules yield at most one
// match at the first occurrence; extracting rules yield one match per
// distinct rendered value, at its first occurrence.
func (r *Rule) Apply(content string) []Match {
	if r.re == nil {
		return r.applyLiteral(content)
	}
	if r.Render == nil {
		loc := r.re.FindStringIndex(content)
		if loc == nil {
			return nil
		}
		return []Match{{Value: r.Display, Offset: loc[0]}}
	}

	locs := r.re.FindAllStringSubmatchIndex(content, -1)
	if locs == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var matches []Match
	for _, loc := range locs {
		groups := submatches(content, loc)
		value := r.Render(groups)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		matches = append(matches, Match{Value: value, Offset: loc[0]})
	}
	return matches
}

func (r *Rule) applyLiteral(content string) []Match {
	needle := r.Literal
	haystack := content
	if r.CaseInsensitive {
		needle = strings.ToLower(needle)
		haystack = strings.ToLower(content)
	}
	idx := strings.Index(haystack, needle)
	if idx < 0 {
		return nil
	}
	return []Match{{Value: r.Display, Offset: idx}}
}

func submatches(content string, loc []int) []string {
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, content[loc[i]:loc[i+1]])
	}
	return groups
}

// LineOf computes the 1-based line number of a byte offset within content.
func LineOf(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + strings.Count(content[:offset], "\n")
}
