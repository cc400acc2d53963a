package pipeline

import "iter"

// Batches splits text into contiguous, non-overlapping slices of at most
// size characters (runes, not bytes, so multi-byte scripts batch evenly).
// The last slice may be shorter. The sequence is lazy and yields the batch
// index alongside the batch text.
func Batches(text string, size int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if size <= 0 || text == "" {
			return
		}
		runes := []rune(text)
		for i, n := 0, 0; i < len(runes); i, n = i+size, n+1 {
			end := i + size
			if end > len(runes) {
				end = len(runes)
			}
			if !yield(n, string(runes[i:end])) {
				return
			}
		}
	}
}
