package analyzer

// Similarity computes the normalized Levenshtein similarity between two
// signature byte sequences: (maxLen - editDistance) / maxLen, in [0, 1].
//
// The edit distance uses unit-cost insertions, deletions, and substitutions
// over a full (len(a)+1) x (len(b)+1) dynamic-programming table. Two empty
// sequences are identical and score 1.0.
//
// This is the dominant cost center of the whole pipeline: O(len(a)*len(b))
// time and space per call.
func Similarity(a, b []byte) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
		dp[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		dp[0][j] = j
	}

	for i, x := range a {
		for j, y := range b {
			if x == y {
				dp[i+1][j+1] = dp[i][j]
				continue
			}
			dp[i+1][j+1] = 1 + min(dp[i][j], dp[i][j+1], dp[i+1][j])
		}
	}

	maxLen := float64(max(len(a), len(b)))
	return (maxLen - float64(dp[len(a)][len(b)])) / maxLen
}
