package engine

import "strings"

// Similarity returns a normalized similarity score in [0,1] between two
// strings, defined as (maxLen - editDistance) / maxLen over the case-folded
// inputs, measured in characters rather than bytes so multibyte titles weigh
// each character as one edit. Identical strings (including two empty strings)
// score 1.
//
// This is the only numerically precise primitive in the engine; resolver
// behavior depends on it being exactly this formula.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}

	return float64(maxLen-editDistance(ra, rb)) / float64(maxLen)
}

// editDistance computes the classic Levenshtein distance between a and b:
// the minimum number of single-character insertions, deletions, and
// substitutions to transform one into the other.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Single-row dynamic programming.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
