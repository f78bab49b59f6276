package analyzer

import "github.com/ludo-technologies/asmdup/internal/asm"

// MatchPair records one cross-snapshot pair scoring at or above the
// threshold.
type MatchPair struct {
	A          *asm.Function
	B          *asm.Function
	Similarity float64
}

// CrossCompare scores every (a, b) pair between the two snapshots and
// retains the pairs whose similarity is at or above the threshold, in scan
// order (A outer, B inner). Unlike the cluster index there is no
// short-circuiting: all |A|*|B| pairs are scored.
func CrossCompare(a, b *asm.Snapshot, threshold float64) []MatchPair {
	var pairs []MatchPair
	for _, f0 := range a.Funcs {
		for _, f1 := range b.Funcs {
			sim := Similarity(f0.Key, f1.Key)
			if sim >= threshold {
				pairs = append(pairs, MatchPair{A: f0, B: f1, Similarity: sim})
			}
		}
	}
	return pairs
}

// FileOrderEntry is one row of the file-order cross-reference view: the
// A-side function and the name of its first duplicate in B, or an empty
// string when none was found.
type FileOrderEntry struct {
	Name    string
	DupName string
}

// FileOrder walks snapshot a in its sorted order and, for each function,
// reports the first retained pair whose A side matches it by name. This is
// the human-auditable counterpart of the pair table.
func FileOrder(a *asm.Snapshot, pairs []MatchPair) []FileOrderEntry {
	entries := make([]FileOrderEntry, 0, len(a.Funcs))
	for _, fn := range a.Funcs {
		entry := FileOrderEntry{Name: fn.Name}
		for _, p := range pairs {
			if p.A.Name == fn.Name {
				entry.DupName = p.B.Name
				break
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
