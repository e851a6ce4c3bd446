// Package similarity implements the normalized edit-distance measure used
// for case deduplication and soft-match score boosting.
package similarity

// Distance computes the Levenshtein edit distance between two strings,
// counted over runes. The result is symmetric.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Ratio returns a normalized similarity in [0, 1]:
// (maxLen - distance) / maxLen, and 1.0 when both strings are empty.
// Inputs are compared as given; callers lowercase them beforehand.
func Ratio(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))

	longest := la
	if lb > la {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}

	return float64(longest-Distance(a, b)) / float64(longest)
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
