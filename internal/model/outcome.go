package model

// Outcome is the lifecycle classification of a session
type Outcome string

const (
	OutcomePlaying Outcome = "PLAYING"
	OutcomeWon     Outcome = "WON"
	OutcomeLost    Outcome = "LOST"
	// OutcomeRestored marks a session restored from a finished player whose
	// persisted record does not say whether they won or lost.
	OutcomeRestored Outcome = "RESTORED"
)

// IsTerminal returns true for every outcome except PLAYING
func (o Outcome) IsTerminal() bool {
	return o != OutcomePlaying
}
