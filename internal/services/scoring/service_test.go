package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch-go/internal/model"
)

type ScoringSuite struct {
	suite.Suite
}

func TestScoringSuite(t *testing.T) {
	suite.Run(t, new(ScoringSuite))
}

// Score tests

func (s *ScoringSuite) TestScoreExamples() {
	s.Equal(1000, Score(0, true))
	s.Equal(800, Score(100, true))
	s.Equal(0, Score(400, true))
	s.Equal(0, Score(500, true))
}

func (s *ScoringSuite) TestScoreRoundsDown() {
	s.Equal(997, Score(1.2, true))  // 997.6
	s.Equal(996, Score(1.75, true)) // 996.5
}

func (s *ScoringSuite) TestLossIsAlwaysZero() {
	for _, elapsed := range []float64{0, 0.5, 10, 300, 10000} {
		s.Equal(0, Score(elapsed, false))
	}
}

func (s *ScoringSuite) TestScoreIsNonIncreasingInElapsedTime() {
	prev := Score(0, true)
	for tenths := 1; tenths <= 6000; tenths++ {
		cur := Score(float64(tenths)/10, true)
		s.LessOrEqual(cur, prev)
		s.GreaterOrEqual(cur, 0)
		prev = cur
	}
}

func (s *ScoringSuite) TestNegativeElapsedIsClamped() {
	s.Equal(BaseScore, Score(-30, true))
}

// Leaderboard tests

func (s *ScoringSuite) players() []model.PlayerResult {
	return []model.PlayerResult{
		{Name: "ana", Score: 300},
		{Name: "bo", Score: 900},
		{Name: "cy", Score: 500},
		{Name: "di", Score: 500},
		{Name: "ed", Score: 100},
		{Name: "fay", Score: 700},
		{Name: "gus", Score: 0},
	}
}

func (s *ScoringSuite) TestLeaderboardTopFiveByDescendingScore() {
	board := BuildLeaderboard(s.players(), "bo", LeaderboardSize)

	s.Require().Len(board.Top, 5)
	names := make([]string, len(board.Top))
	for i, p := range board.Top {
		names[i] = p.Name
	}
	// cy precedes di on the tie because it came first
	s.Equal([]string{"bo", "fay", "cy", "di", "ana"}, names)
}

func (s *ScoringSuite) TestLeaderboardIncludesOwnScoreOutsideTopFive() {
	board := BuildLeaderboard(s.players(), "gus", LeaderboardSize)

	s.Equal("gus", board.PlayerName)
	s.Equal(0, board.PlayerScore)
	s.Equal(7, board.PlayerRank)
	for _, p := range board.Top {
		s.NotEqual("gus", p.Name)
	}
}

func (s *ScoringSuite) TestLeaderboardUnknownPlayer() {
	board := BuildLeaderboard(s.players(), "zed", LeaderboardSize)

	s.Equal(0, board.PlayerScore)
	s.Equal(0, board.PlayerRank)
}

func (s *ScoringSuite) TestLeaderboardFewerPlayersThanLimit() {
	board := BuildLeaderboard([]model.PlayerResult{{Name: "solo", Score: 42}}, "solo", LeaderboardSize)

	s.Len(board.Top, 1)
	s.Equal(42, board.PlayerScore)
	s.Equal(1, board.PlayerRank)
}

func (s *ScoringSuite) TestRankDoesNotMutateInput() {
	players := s.players()
	_ = Rank(players)
	s.Equal("ana", players[0].Name)
}
