package scoring

import (
	"math"
	"sort"

	"github.com/mcoot/wordsearch-go/internal/model"
)

// Scoring constants
const (
	BaseScore        = 1000
	PenaltyPerSecond = 2
	LeaderboardSize  = 5
)

// Score returns the points for a finished round. A loss is always worth 0;
// a win is worth BaseScore minus PenaltyPerSecond per elapsed second,
// rounded down and floored at 0.
func Score(elapsedSeconds float64, won bool) int {
	if !won {
		return 0
	}
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	score := math.Floor(BaseScore - PenaltyPerSecond*elapsedSeconds)
	if score < 0 {
		return 0
	}
	return int(score)
}

// Rank orders players by descending score. Ties keep their original order.
func Rank(players []model.PlayerResult) []model.PlayerResult {
	ranked := make([]model.PlayerResult, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BuildLeaderboard returns the top `limit` players plus the named player's
// own score and rank, whether or not they made the top list
func BuildLeaderboard(players []model.PlayerResult, name string, limit int) model.Leaderboard {
	ranked := Rank(players)

	board := model.Leaderboard{
		PlayerName: name,
	}

	top := ranked
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}
	board.Top = top

	for i, p := range ranked {
		if p.Name == name {
			board.PlayerScore = p.Score
			board.PlayerRank = i + 1
			break
		}
	}

	return board
}
