package matching

// BruteForce compares the pattern against every window of the text, left to
// right, and returns the start offset of each full match.
//
// Worst case O(n*m) on inputs like "aaa...ab" against "aaa...a".
func BruteForce(text, pattern []byte) []int {
	n, m := len(text), len(pattern)
	if !searchable(n, m) {
		return nil
	}

	var positions []int
	for i := 0; i <= n-m; i++ {
		j := 0
		for j < m && text[i+j] == pattern[j] {
			j++
		}
		if j == m {
			positions = append(positions, i)
		}
	}
	return positions
}
