// Package matching implements exact single-pattern string matching over byte
// slices: brute force, Knuth-Morris-Pratt, Boyer-Moore and Rabin-Karp.
//
// Every search returns the start offsets of all occurrences of the pattern in
// ascending order, overlapping occurrences included. Empty texts, empty patterns
// and patterns longer than the text produce no matches rather than an error.
//
// The preprocessing structures (LPS table, bad-character table, rolling hash)
// are immutable once built, so a compiled matcher such as *KMP can be shared by
// concurrent searches.
package matching

// searchable reports whether a pattern of length m can occur in a text of
// length n at all.
func searchable(n, m int) bool {
	return m > 0 && n > 0 && m <= n
}
