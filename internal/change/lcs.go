package change

// MatchedPair is one element of a computed LCS: a 0-based index into the
// old sequence paired with a 0-based index into the new sequence.
type MatchedPair struct {
	OldIndex int
	NewIndex int
}

// ComputeLCS runs the classical dynamic-programming longest-common-
// subsequence over two sequences of line hashes, using an (m+1)x(n+1)
// table, and backtraces it into the ordered list of matched (old, new)
// index pairs.
//
// Ties in the backtrace are resolved deterministically: on a mismatch,
// "up" (decrementing the old index) is preferred only when
// dp[i-1][j] > dp[i][j-1]; the equal case, along with the strictly-less
// case, takes "left" (decrementing the new index). This attributes
// inserted lines to the new side rather than the old, which is what makes
// get_changed_lines return insertion points instead of stale old-side
// positions.
func ComputeLCS(old, new []string) []MatchedPair {
	m, n := len(old), len(new)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if old[i-1] == new[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] > dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	var pairs []MatchedPair
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case old[i-1] == new[j-1]:
			pairs = append(pairs, MatchedPair{OldIndex: i - 1, NewIndex: j - 1})
			i--
			j--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	// The backtrace runs from (m,n) down to (0,0), so pairs come out in
	// reverse; restore ascending order.
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}
