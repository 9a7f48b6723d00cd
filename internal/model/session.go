package model

import "time"

// Selection is the in-progress pointer gesture over the grid
type Selection struct {
	Anchor *Position
	Path   []Position
	Active bool
}

// ClockState is the countdown as last reconciled
type ClockState struct {
	StartTime *time.Time // authoritative, supplied externally; nil until known
	TimeLimit int        // seconds
	Remaining int        // seconds
}

// SessionState is a read-only snapshot of one player's session
type SessionState struct {
	PlayerName string
	Outcome    Outcome
	Score      int // final score, 0 while playing
	Rows       []string
	Found      [][]bool
	Words      []WordEntry
	FoundCount int
	Selection  Selection
	Clock      ClockState
}
