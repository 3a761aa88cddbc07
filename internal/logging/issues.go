package logging

import "sort"

// IssueKind classifies a recoverable condition met during a run
type IssueKind string

const (
	MalformedFilename    IssueKind = "malformed filename"
	MissingFeatureFile   IssueKind = "missing feature file"
	MultiLineFeatureFile IssueKind = "multi-line feature file"
	FeatureWidthMismatch IssueKind = "feature width mismatch"
	StripFailed          IssueKind = "metadata strip failed"
	ExtractionFailed     IssueKind = "feature extraction failed"
)

// Issue is one recoverable condition, tied to the path that triggered it
type Issue struct {
	Kind   IssueKind
	Path   string
	Detail string
}

// Issues collects recoverable conditions for the end-of-run summary.
// The zero value is ready to use. Not safe for concurrent use.
type Issues struct {
	items []Issue
}

// Add records an issue
func (is *Issues) Add(kind IssueKind, path, detail string) {
	is.items = append(is.items, Issue{Kind: kind, Path: path, Detail: detail})
}

// Len returns the number of recorded issues
func (is *Issues) Len() int {
	if is == nil {
		return 0
	}
	return len(is.items)
}

// All returns the issues in the order they were recorded
func (is *Issues) All() []Issue {
	if is == nil {
		return nil
	}
	return append([]Issue(nil), is.items...)
}

// OfKind returns the issues of one kind, in recorded order
func (is *Issues) OfKind(kind IssueKind) []Issue {
	var out []Issue
	for _, it := range is.All() {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Paths returns the distinct paths that triggered any issue, sorted
func (is *Issues) Paths() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, it := range is.All() {
		if !seen[it.Path] {
			seen[it.Path] = true
			paths = append(paths, it.Path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Counts returns how many issues of each kind were recorded
func (is *Issues) Counts() map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, it := range is.All() {
		counts[it.Kind]++
	}
	return counts
}
