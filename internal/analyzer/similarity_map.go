package analyzer

import "github.com/ludo-technologies/asmdup/internal/asm"

// Entry pairs a representative signature with the cluster of functions
// judged similar to it.
type Entry struct {
	Key     []byte
	Cluster []*asm.Function
}

// SimilarityMap is the fuzzy duplicate index: an insertion-ordered
// collection of (representative key, cluster) entries whose membership test
// is edit-distance similarity rather than exact key equality.
//
// Fuzzy similarity is not transitive, so a conventional hash map cannot
// bucket it; inserts scan existing representatives in insertion order and
// the first one scoring at or above the threshold wins. Earlier-created
// clusters therefore take priority when several would qualify.
type SimilarityMap struct {
	threshold float64
	entries   []*Entry
}

// NewSimilarityMap creates an empty index with the given similarity cutoff
// in [0, 1]. A threshold of 1.0 degenerates to exact-signature equality.
func NewSimilarityMap(threshold float64) *SimilarityMap {
	return &SimilarityMap{threshold: threshold}
}

// Insert files fn under the first existing representative similar to key,
// stamping fn.Similarity against the cluster's first member, or founds a
// new cluster when no representative qualifies (Similarity stays 0: there
// is nothing to compare against yet).
func (m *SimilarityMap) Insert(key []byte, fn *asm.Function) {
	for _, e := range m.entries {
		if !lengthsCanReach(len(key), len(e.Key), m.threshold) {
			continue
		}
		if Similarity(key, e.Key) >= m.threshold {
			fn.Similarity = Similarity(fn.Key, e.Cluster[0].Key)
			e.Cluster = append(e.Cluster, fn)
			return
		}
	}
	m.entries = append(m.entries, &Entry{Key: key, Cluster: []*asm.Function{fn}})
}

// Entries returns the full (representative, cluster) collection in
// insertion order. Consumers filter to clusters of size > 1 for actual
// duplicate findings.
func (m *SimilarityMap) Entries() []*Entry {
	return m.entries
}

// Len returns the number of clusters, including singletons.
func (m *SimilarityMap) Len() int {
	return len(m.entries)
}

// lengthsCanReach reports whether two signatures of the given lengths can
// possibly score at or above the threshold. Edit distance is bounded below
// by the length difference, so similarity is bounded above by
// (maxLen - |la-lb|) / maxLen; when even that bound falls short the scorer
// call is skipped. The filter never changes observable clustering.
func lengthsCanReach(la, lb int, threshold float64) bool {
	maxLen := max(la, lb)
	if maxLen == 0 {
		return true
	}
	bound := float64(maxLen-abs(la-lb)) / float64(maxLen)
	return bound >= threshold
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
