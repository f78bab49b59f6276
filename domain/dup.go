package domain

import (
	"context"
	"io"
)

// FunctionReport is one row of a duplicate report: a function or window
// fragment that landed in a reported cluster.
type FunctionReport struct {
	Name       string  `json:"name" yaml:"name" csv:"name"`
	File       string  `json:"file" yaml:"file" csv:"file"`
	Ops        int     `json:"instructions" yaml:"instructions" csv:"instructions"`
	Similarity float64 `json:"similarity" yaml:"similarity" csv:"similarity"`
	Decompiled bool    `json:"decompiled" yaml:"decompiled" csv:"decompiled"`
}

// Cluster is a group of functions/fragments judged mutually similar to the
// cluster's representative signature. Size 1 means no duplicate was found;
// such clusters are reported only on request.
type Cluster struct {
	ID        int               `json:"id" yaml:"id"`
	Size      int               `json:"size" yaml:"size"`
	Functions []*FunctionReport `json:"functions" yaml:"functions"`
}

// PairMatch is one retained cross pair from the ordered two-directory
// comparison.
type PairMatch struct {
	Left       string  `json:"left" yaml:"left" csv:"left"`
	Right      string  `json:"right" yaml:"right" csv:"right"`
	Similarity float64 `json:"similarity" yaml:"similarity" csv:"similarity"`
}

// FileOrderRow cross-references one A-side function with its first
// duplicate in B; Duplicate is empty when none was found.
type FileOrderRow struct {
	Name      string `json:"name" yaml:"name" csv:"name"`
	Duplicate string `json:"duplicate,omitempty" yaml:"duplicate,omitempty" csv:"duplicate"`
}

// Statistics summarizes one run.
type Statistics struct {
	FilesScanned       int `json:"files_scanned" yaml:"files_scanned"`
	FunctionsParsed    int `json:"functions_parsed" yaml:"functions_parsed"`
	StubsFiltered      int `json:"stubs_filtered" yaml:"stubs_filtered"`
	FragmentsGenerated int `json:"fragments_generated,omitempty" yaml:"fragments_generated,omitempty"`
	Clusters           int `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	DuplicateClusters  int `json:"duplicate_clusters,omitempty" yaml:"duplicate_clusters,omitempty"`
	Matches            int `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// CorpusPair binds an assembly directory to the source tree that may
// already implement parts of it (for the decompiled-status column).
type CorpusPair struct {
	Name        string
	AsmDir      string
	SrcDir      string
	PathMatcher string
	AsmBase     string
}

// ScanRequest configures a cluster-mode run.
type ScanRequest struct {
	// Paths are explicit corpus directories; when empty, Pairs supplies
	// the corpora.
	Paths []string
	Pairs []CorpusPair

	// Threshold is the similarity cutoff in [0, 1].
	Threshold float64

	// Sliding-window fragmentation parameters.
	WindowStride int
	WindowSize   int

	// Traversal settings.
	Recursive       bool
	Extensions      []string
	IncludePatterns []string
	ExcludePatterns []string

	// ShowAll includes size-1 clusters in the report.
	ShowAll bool

	// ListFunctions emits the diagnostic per-directory listing (all
	// parsed functions, stubs included) to the error stream.
	ListFunctions bool

	// Output settings.
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	SortBy       SortCriteria

	// SrcBase is stripped from file paths in the report.
	SrcBase string
}

// Validate checks the request before the pipeline runs.
func (r *ScanRequest) Validate() error {
	if len(r.Paths) == 0 && len(r.Pairs) == 0 {
		return NewValidationError("no corpus directories: give directories or configure [[pairs]]")
	}
	if !(r.Threshold >= 0.0 && r.Threshold <= 1.0) {
		return NewValidationError("threshold must be between 0.0 and 1.0")
	}
	if r.WindowStride < 1 {
		return NewValidationError("window stride must be >= 1")
	}
	if r.WindowSize < 1 {
		return NewValidationError("window size must be >= 1")
	}
	if len(r.Extensions) == 0 {
		return NewValidationError("at least one input extension is required")
	}
	return nil
}

// ScanResponse is the cluster-mode result.
type ScanResponse struct {
	Clusters   []*Cluster  `json:"clusters" yaml:"clusters"`
	Statistics *Statistics `json:"statistics" yaml:"statistics"`
	Duration   int64       `json:"duration_ms" yaml:"duration_ms"`
}

// CompareRequest configures an ordered two-directory comparison.
type CompareRequest struct {
	DirA string
	DirB string

	// Threshold is the similarity cutoff in [0, 1].
	Threshold float64

	// Traversal settings.
	Recursive       bool
	Extensions      []string
	IncludePatterns []string
	ExcludePatterns []string

	// ListFunctions emits the diagnostic per-directory listing to the
	// error stream.
	ListFunctions bool

	// Output settings.
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// Validate checks the request before the pipeline runs. Pair mode requires
// exactly two directories.
func (r *CompareRequest) Validate() error {
	if r.DirA == "" || r.DirB == "" {
		return NewValidationError("exactly two directories required")
	}
	if !(r.Threshold >= 0.0 && r.Threshold <= 1.0) {
		return NewValidationError("threshold must be between 0.0 and 1.0")
	}
	if len(r.Extensions) == 0 {
		return NewValidationError("at least one input extension is required")
	}
	return nil
}

// CompareResponse is the pair-mode result.
type CompareResponse struct {
	DirA       string          `json:"dir_a" yaml:"dir_a"`
	DirB       string          `json:"dir_b" yaml:"dir_b"`
	Matches    []*PairMatch    `json:"matches" yaml:"matches"`
	FileOrder  []*FileOrderRow `json:"file_order" yaml:"file_order"`
	Statistics *Statistics     `json:"statistics" yaml:"statistics"`
	Duration   int64           `json:"duration_ms" yaml:"duration_ms"`
}

// DupService is the duplicate-detection engine behind both report modes.
type DupService interface {
	// Scan runs cluster mode: parse, filter stubs, fragment, and index
	// every corpus in the request.
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)

	// Compare runs pair mode: the ordered all-pairs comparison between
	// exactly two directories.
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
}

// FileReader abstracts corpus traversal and file access.
type FileReader interface {
	// CollectAsmFiles recursively finds disassembly files under root.
	CollectAsmFiles(root string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads one file's content.
	ReadFile(path string) ([]byte, error)
}

// DupOutputFormatter renders responses in the requested format.
type DupOutputFormatter interface {
	FormatScanResponse(resp *ScanResponse, format OutputFormat, w io.Writer) error
	FormatCompareResponse(resp *CompareResponse, format OutputFormat, w io.Writer) error
}
