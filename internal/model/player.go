package model

// PlayerResult is one entry of a match's players list
type PlayerResult struct {
	Name     string
	Score    int
	Finished bool
	// Outcome is the terminal outcome when known. Older records may only
	// carry Finished and Score, in which case it is empty.
	Outcome Outcome
}

// Leaderboard is the end-of-round ranking view for one player
type Leaderboard struct {
	Top         []PlayerResult
	PlayerName  string
	PlayerScore int
	PlayerRank  int // 1-based position in the full ranking, 0 if not listed
}
