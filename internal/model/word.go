package model

// WordEntry is one word the player has to find
type WordEntry struct {
	Word  string // uppercase, letters only
	Found bool
}

// NewWordEntries wraps a normalized word list, preserving order and duplicates
func NewWordEntries(words []string) []WordEntry {
	entries := make([]WordEntry, len(words))
	for i, w := range words {
		entries[i] = WordEntry{Word: w}
	}
	return entries
}

// AllFound returns true if every entry has been found.
// An empty list is never considered complete.
func AllFound(entries []WordEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if !e.Found {
			return false
		}
	}
	return true
}

// FoundCount returns how many entries have been found
func FoundCount(entries []WordEntry) int {
	count := 0
	for _, e := range entries {
		if e.Found {
			count++
		}
	}
	return count
}
