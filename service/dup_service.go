package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/asmdup/domain"
	"github.com/ludo-technologies/asmdup/internal/analyzer"
	"github.com/ludo-technologies/asmdup/internal/asm"
	"github.com/ludo-technologies/asmdup/internal/xref"
)

// DupServiceImpl implements domain.DupService: the full parse -> filter ->
// fragment -> index pipeline for cluster mode, and the ordered all-pairs
// comparison for pair mode.
type DupServiceImpl struct {
	fileReader domain.FileReader
	progress   domain.ProgressReporter
	status     io.Writer
}

// NewDupService creates the duplicate-detection service. status receives
// diagnostic listings (default stderr).
func NewDupService(fileReader domain.FileReader, progress domain.ProgressReporter, status io.Writer) *DupServiceImpl {
	if status == nil {
		status = os.Stderr
	}
	return &DupServiceImpl{
		fileReader: fileReader,
		progress:   progress,
		status:     status,
	}
}

// Scan runs cluster mode over the request's corpora. Insertion order is the
// corpus order then each snapshot's address order, which makes clustering
// deterministic.
func (s *DupServiceImpl) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	pairs := req.Pairs
	if len(req.Paths) > 0 {
		pairs = make([]domain.CorpusPair, 0, len(req.Paths))
		for _, p := range req.Paths {
			pairs = append(pairs, domain.CorpusPair{Name: p, AsmDir: p})
		}
	}

	index := analyzer.NewSimilarityMap(req.Threshold)
	stats := &domain.Statistics{}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snap, err := s.loadSnapshot(pair.AsmDir, req.Recursive, req.Extensions, req.IncludePatterns, req.ExcludePatterns, stats)
		if err != nil {
			return nil, err
		}

		if pair.SrcDir != "" {
			if err := s.stampDecompiled(snap, pair); err != nil {
				return nil, err
			}
		}

		if req.ListFunctions {
			s.listFunctions(snap)
		}

		for _, fn := range snap.Funcs {
			if fn.IsStub() {
				stats.StubsFiltered++
				continue
			}
			index.Insert(fn.Key, fn)
			for _, frag := range asm.Windows(fn, req.WindowStride, req.WindowSize) {
				index.Insert(frag.Key, frag)
				stats.FragmentsGenerated++
			}
		}
	}

	clusters := buildClusters(index, req)
	stats.Clusters = index.Len()
	for _, e := range index.Entries() {
		if len(e.Cluster) > 1 {
			stats.DuplicateClusters++
		}
	}

	return &domain.ScanResponse{
		Clusters:   clusters,
		Statistics: stats,
		Duration:   time.Since(start).Milliseconds(),
	}, nil
}

// Compare runs pair mode between exactly two directories.
func (s *DupServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	stats := &domain.Statistics{}
	snaps := make([]*asm.Snapshot, 0, 2)
	for _, dir := range []string{req.DirA, req.DirB} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := s.loadSnapshot(dir, req.Recursive, req.Extensions, req.IncludePatterns, req.ExcludePatterns, stats)
		if err != nil {
			return nil, err
		}
		if req.ListFunctions {
			s.listFunctions(snap)
		}
		stats.StubsFiltered += dropStubs(snap)
		snaps = append(snaps, snap)
	}

	matches := analyzer.CrossCompare(snaps[0], snaps[1], req.Threshold)
	order := analyzer.FileOrder(snaps[0], matches)
	stats.Matches = len(matches)

	resp := &domain.CompareResponse{
		DirA:       req.DirA,
		DirB:       req.DirB,
		Matches:    make([]*domain.PairMatch, 0, len(matches)),
		FileOrder:  make([]*domain.FileOrderRow, 0, len(order)),
		Statistics: stats,
		Duration:   time.Since(start).Milliseconds(),
	}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, &domain.PairMatch{
			Left:       m.A.Name,
			Right:      m.B.Name,
			Similarity: m.Similarity,
		})
	}
	for _, e := range order {
		resp.FileOrder = append(resp.FileOrder, &domain.FileOrderRow{
			Name:      e.Name,
			Duplicate: e.DupName,
		})
	}
	return resp, nil
}

// loadSnapshot parses one directory into an address-ordered snapshot. File
// handles are scoped to ReadFile; nothing outlives the parse of its file.
func (s *DupServiceImpl) loadSnapshot(dir string, recursive bool, extensions, includePatterns, excludePatterns []string, stats *domain.Statistics) (*asm.Snapshot, error) {
	files, err := s.fileReader.CollectAsmFiles(dir, recursive, extensions, includePatterns, excludePatterns)
	if err != nil {
		return nil, err
	}

	snap := &asm.Snapshot{Dir: dir}
	s.progress.Start("Parsing "+dir, len(files))
	for _, path := range files {
		data, err := s.fileReader.ReadFile(path)
		if err != nil {
			return nil, err
		}
		snap.Funcs = append(snap.Funcs, asm.ParseFunction(string(data), dir, path))
		s.progress.Increment()
	}
	s.progress.Complete()

	stats.FilesScanned += len(files)
	stats.FunctionsParsed += len(snap.Funcs)
	snap.SortByAddress()
	return snap, nil
}

// stampDecompiled cross-references the snapshot against the pair's source
// tree: a function whose assembly is still spliced in via a marker has not
// been ported yet.
func (s *DupServiceImpl) stampDecompiled(snap *asm.Snapshot, pair domain.CorpusPair) error {
	idx, err := xref.Scan(pair.SrcDir, pair.AsmBase)
	if err != nil {
		return domain.NewAnalysisError("failed to scan source markers in "+pair.SrcDir, err)
	}
	for _, fn := range snap.Funcs {
		if pair.PathMatcher != "" && !strings.Contains(fn.File, pair.PathMatcher) {
			continue
		}
		fn.Decompiled = !idx.StillAsm(fn.File, fn.Name)
	}
	return nil
}

// listFunctions prints the diagnostic listing of every parsed function
// (stubs included) to the status stream.
func (s *DupServiceImpl) listFunctions(snap *asm.Snapshot) {
	fmt.Fprintf(s.status, "dir %s\n", snap.Dir)
	for _, fn := range snap.Funcs {
		fmt.Fprintf(s.status, "\t%s %d\n", fn.Name, len(fn.Ops))
	}
}

// dropStubs removes trivial stub bodies from the snapshot in place and
// returns how many were dropped.
func dropStubs(snap *asm.Snapshot) int {
	kept := snap.Funcs[:0]
	dropped := 0
	for _, fn := range snap.Funcs {
		if fn.IsStub() {
			dropped++
			continue
		}
		kept = append(kept, fn)
	}
	snap.Funcs = kept
	return dropped
}

// buildClusters converts the index into report clusters honoring the report
// contract: rows within a cluster by file path then ascending similarity,
// clusters by the requested criteria (default: descending size, ties by
// ascending first-member file path).
func buildClusters(index *analyzer.SimilarityMap, req *domain.ScanRequest) []*domain.Cluster {
	var clusters []*domain.Cluster
	for _, e := range index.Entries() {
		if len(e.Cluster) < 2 && !req.ShowAll {
			continue
		}

		c := &domain.Cluster{Size: len(e.Cluster)}
		for _, fn := range e.Cluster {
			c.Functions = append(c.Functions, &domain.FunctionReport{
				Name:       fn.Name,
				File:       reportPath(fn.File, req.SrcBase),
				Ops:        len(fn.Ops),
				Similarity: fn.Similarity,
				Decompiled: fn.Decompiled,
			})
		}
		sort.SliceStable(c.Functions, func(i, j int) bool {
			if c.Functions[i].File != c.Functions[j].File {
				return c.Functions[i].File < c.Functions[j].File
			}
			return c.Functions[i].Similarity < c.Functions[j].Similarity
		})
		clusters = append(clusters, c)
	}

	sortClusters(clusters, req.SortBy)
	for i, c := range clusters {
		c.ID = i + 1
	}
	return clusters
}

func sortClusters(clusters []*domain.Cluster, by domain.SortCriteria) {
	switch by {
	case domain.SortByLocation:
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].Functions[0].File < clusters[j].Functions[0].File
		})
	case domain.SortBySimilarity:
		sort.SliceStable(clusters, func(i, j int) bool {
			return meanSimilarity(clusters[i]) > meanSimilarity(clusters[j])
		})
	default:
		sort.SliceStable(clusters, func(i, j int) bool {
			if clusters[i].Size != clusters[j].Size {
				return clusters[i].Size > clusters[j].Size
			}
			return clusters[i].Functions[0].File < clusters[j].Functions[0].File
		})
	}
}

func meanSimilarity(c *domain.Cluster) float64 {
	if len(c.Functions) == 0 {
		return 0.0
	}
	total := 0.0
	for _, f := range c.Functions {
		total += f.Similarity
	}
	return total / float64(len(c.Functions))
}

// reportPath relativizes a file path against the configured source base.
func reportPath(file, srcBase string) string {
	if srcBase == "" {
		return file
	}
	return strings.TrimPrefix(file, srcBase)
}
