package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/asmdup/domain"
)

// DupOutputFormatterImpl implements domain.DupOutputFormatter.
type DupOutputFormatterImpl struct{}

// NewDupOutputFormatter creates a new output formatter.
func NewDupOutputFormatter() *DupOutputFormatterImpl {
	return &DupOutputFormatterImpl{}
}

// FormatScanResponse renders a cluster-mode report.
func (f *DupOutputFormatterImpl) FormatScanResponse(resp *domain.ScanResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatScanText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		return f.formatScanCSV(resp, w)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatCompareResponse renders a pair-mode report.
func (f *DupOutputFormatterImpl) FormatCompareResponse(resp *domain.CompareResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatCompareText(resp, w)
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		return f.formatCompareCSV(resp, w)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

const separator = "-------------------------------------------------------------------------------"

func (f *DupOutputFormatterImpl) formatScanText(resp *domain.ScanResponse, w io.Writer) error {
	fmt.Fprintf(w, "Duplicate Clusters\n")
	fmt.Fprintf(w, "==================\n\n")

	if stats := resp.Statistics; stats != nil {
		fmt.Fprintf(w, "Summary:\n")
		fmt.Fprintf(w, "  Files scanned: %d\n", stats.FilesScanned)
		fmt.Fprintf(w, "  Functions parsed: %d\n", stats.FunctionsParsed)
		fmt.Fprintf(w, "  Stubs filtered: %d\n", stats.StubsFiltered)
		fmt.Fprintf(w, "  Fragments generated: %d\n", stats.FragmentsGenerated)
		fmt.Fprintf(w, "  Duplicate clusters: %d (of %d total)\n", stats.DuplicateClusters, stats.Clusters)
		fmt.Fprintf(w, "  Analysis duration: %dms\n\n", resp.Duration)
	}

	if len(resp.Clusters) == 0 {
		fmt.Fprintf(w, "No duplicates detected.\n")
		return nil
	}

	fmt.Fprintf(w, "| %-4s | %-8s | %-35s | %s\n", "%", "Decomp?", "Name", "File")
	for _, cluster := range resp.Clusters {
		fmt.Fprintln(w, separator)
		for _, fn := range cluster.Functions {
			fmt.Fprintf(w, "| %-4.2f | %-8t | %-35s | %s\n",
				fn.Similarity, fn.Decompiled, fn.Name, fn.File)
		}
	}
	return nil
}

func (f *DupOutputFormatterImpl) formatScanCSV(resp *domain.ScanResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"cluster", "similarity", "decompiled", "name", "instructions", "file"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, cluster := range resp.Clusters {
		for _, fn := range cluster.Functions {
			record := []string{
				strconv.Itoa(cluster.ID),
				strconv.FormatFloat(fn.Similarity, 'f', 4, 64),
				strconv.FormatBool(fn.Decompiled),
				fn.Name,
				strconv.Itoa(fn.Ops),
				fn.File,
			}
			if err := cw.Write(record); err != nil {
				return domain.NewOutputError("failed to write CSV record", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}

func (f *DupOutputFormatterImpl) formatCompareText(resp *domain.CompareResponse, w io.Writer) error {
	hyphens := strings.Repeat("-", 80)

	fmt.Fprintln(w, hyphens)
	fmt.Fprintln(w, "Duplicates and similarity")
	fmt.Fprintln(w, hyphens)
	for _, m := range resp.Matches {
		fmt.Fprintf(w, "%-40s | %-40s | %.4f\n", m.Left, m.Right, m.Similarity)
	}

	fmt.Fprintln(w, hyphens)
	fmt.Fprintln(w, "Functions in file order")
	fmt.Fprintln(w, hyphens)
	fmt.Fprintf(w, "%-40s | %-40s\n", resp.DirA, resp.DirB)
	fmt.Fprintln(w, hyphens)
	for _, row := range resp.FileOrder {
		fmt.Fprintf(w, "%-40s | %-40s\n", row.Name, row.Duplicate)
	}

	if stats := resp.Statistics; stats != nil {
		fmt.Fprintln(w, hyphens)
		fmt.Fprintf(w, "%d matches from %d functions (%d files, %d stubs filtered, %dms)\n",
			stats.Matches, stats.FunctionsParsed, stats.FilesScanned, stats.StubsFiltered, resp.Duration)
	}
	return nil
}

func (f *DupOutputFormatterImpl) formatCompareCSV(resp *domain.CompareResponse, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"left", "right", "similarity"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, m := range resp.Matches {
		record := []string{
			m.Left,
			m.Right,
			strconv.FormatFloat(m.Similarity, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}
