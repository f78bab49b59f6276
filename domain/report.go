package domain

import (
	"fmt"
	"io"
)

// OutputFormat identifies a report encoding.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// ParseOutputFormat validates a format name from flags or config.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
		return OutputFormat(s), nil
	default:
		return "", NewUnsupportedFormatError(s)
	}
}

// SortCriteria selects the cluster ordering of a scan report.
type SortCriteria string

const (
	// SortBySize orders clusters by descending size, ties broken by
	// ascending first-member file path. This is the report contract's
	// default.
	SortBySize SortCriteria = "size"

	// SortByLocation orders clusters by ascending first-member file path.
	SortByLocation SortCriteria = "location"

	// SortBySimilarity orders clusters by descending mean member
	// similarity.
	SortBySimilarity SortCriteria = "similarity"
)

// ParseSortCriteria validates a sort name from flags or config.
func ParseSortCriteria(s string) (SortCriteria, error) {
	switch SortCriteria(s) {
	case SortBySize, SortByLocation, SortBySimilarity:
		return SortCriteria(s), nil
	default:
		return "", NewValidationError(fmt.Sprintf("unsupported sort criteria: %s (supported: size, location, similarity)", s))
	}
}

// ReportWriter abstracts the report sink. If outputPath is non-empty the
// implementation creates/truncates that file and hands it to writeFunc;
// otherwise writeFunc receives the provided writer (typically stdout).
// Implementations live in the service layer.
type ReportWriter interface {
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// ProgressReporter shows per-file progress during corpus traversal. It is
// purely advisory; implementations decide whether the environment is
// interactive enough to render anything.
type ProgressReporter interface {
	// Start begins a tracked phase with the given item count.
	Start(description string, total int)

	// Increment advances the current phase by one item.
	Increment()

	// Complete ends the current phase.
	Complete()

	// SetWriter redirects progress rendering (default stderr).
	SetWriter(w io.Writer)
}
