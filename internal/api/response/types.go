package response

import (
	"time"

	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/countdown"
	"github.com/mcoot/wordsearch-go/internal/services/selection"
)

// Player represents a players-list entry in API responses
type Player struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Finished bool   `json:"finished"`
	Outcome  string `json:"outcome,omitempty"`
}

// PlayerFromModel converts a model.PlayerResult to a response Player
func PlayerFromModel(p model.PlayerResult) Player {
	return Player{
		Name:     p.Name,
		Score:    p.Score,
		Finished: p.Finished,
		Outcome:  string(p.Outcome),
	}
}

func playersFromModel(players []model.PlayerResult) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Match represents a match. The seed itself is never exposed.
type Match struct {
	Code      string     `json:"code"`
	Words     []string   `json:"words"`
	GridSize  int        `json:"grid_size"`
	TimeLimit int        `json:"time_limit"`
	Seeded    bool       `json:"seeded"`
	Started   bool       `json:"started"`
	StartTime *time.Time `json:"start_time,omitempty"`
	Players   []Player   `json:"players"`
	CreatedAt time.Time  `json:"created_at"`
}

// MatchFromModel converts model.Match
func MatchFromModel(m *model.Match) Match {
	return Match{
		Code:      string(m.Code),
		Words:     m.Config.Words,
		GridSize:  m.Config.GridSize,
		TimeLimit: m.Config.TimeLimit,
		Seeded:    m.Config.Seed != nil,
		Started:   m.IsStarted(),
		StartTime: m.StartTime,
		Players:   playersFromModel(m.Players),
		CreatedAt: m.CreatedAt,
	}
}

// MatchList is the response for listing matches
type MatchList struct {
	Codes []string `json:"codes"`
}

// MatchListFromModel converts a list of match codes
func MatchListFromModel(codes []model.MatchCode) MatchList {
	out := MatchList{Codes: make([]string, len(codes))}
	for i, c := range codes {
		out.Codes[i] = string(c)
	}
	return out
}

// Position is a grid cell
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func positionsFromModel(path []model.Position) []Position {
	out := make([]Position, len(path))
	for i, p := range path {
		out[i] = Position{X: p.X, Y: p.Y}
	}
	return out
}

// Word is one entry of the word list
type Word struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
}

// Selection is the in-progress drag
type Selection struct {
	Active bool       `json:"active"`
	Anchor *Position  `json:"anchor,omitempty"`
	Path   []Position `json:"path"`
}

// Clock is the countdown as seen by the player
type Clock struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	TimeLimit int        `json:"time_limit"`
	Remaining int        `json:"remaining"`
	Display   string     `json:"display"`
}

// Session is one player's view of their round
type Session struct {
	PlayerName string    `json:"player_name"`
	Outcome    string    `json:"outcome"`
	Score      int       `json:"score"`
	Rows       []string  `json:"rows"`
	Found      [][]bool  `json:"found"`
	Words      []Word    `json:"words"`
	FoundCount int       `json:"found_count"`
	Selection  Selection `json:"selection"`
	Clock      Clock     `json:"clock"`
}

// SessionFromModel converts model.SessionState
func SessionFromModel(s model.SessionState) Session {
	words := make([]Word, len(s.Words))
	for i, w := range s.Words {
		words[i] = Word{Word: w.Word, Found: w.Found}
	}

	sel := Selection{
		Active: s.Selection.Active,
		Path:   positionsFromModel(s.Selection.Path),
	}
	if s.Selection.Anchor != nil {
		sel.Anchor = &Position{X: s.Selection.Anchor.X, Y: s.Selection.Anchor.Y}
	}

	return Session{
		PlayerName: s.PlayerName,
		Outcome:    string(s.Outcome),
		Score:      s.Score,
		Rows:       s.Rows,
		Found:      s.Found,
		Words:      words,
		FoundCount: s.FoundCount,
		Selection:  sel,
		Clock: Clock{
			StartTime: s.Clock.StartTime,
			TimeLimit: s.Clock.TimeLimit,
			Remaining: s.Clock.Remaining,
			Display:   countdown.Format(s.Clock.Remaining),
		},
	}
}

// Extend is the response to extending a drag
type Extend struct {
	Accepted bool    `json:"accepted"`
	Session  Session `json:"session"`
}

// Commit is the response to releasing a drag
type Commit struct {
	Matched   bool       `json:"matched"`
	Word      string     `json:"word,omitempty"`
	Index     int        `json:"index"`
	Candidate string     `json:"candidate"`
	Path      []Position `json:"path"`
	Session   Session    `json:"session"`
}

// CommitFromResult converts a selection.Result plus the resulting session
func CommitFromResult(r selection.Result, s model.SessionState) Commit {
	return Commit{
		Matched:   r.Matched,
		Word:      r.Word,
		Index:     r.Index,
		Candidate: r.Candidate,
		Path:      positionsFromModel(r.Path),
		Session:   SessionFromModel(s),
	}
}

// Leaderboard is the end-of-round ranking
type Leaderboard struct {
	Top         []Player `json:"top"`
	PlayerName  string   `json:"player_name,omitempty"`
	PlayerScore int      `json:"player_score"`
	PlayerRank  int      `json:"player_rank"`
}

// LeaderboardFromModel converts model.Leaderboard
func LeaderboardFromModel(l model.Leaderboard) Leaderboard {
	return Leaderboard{
		Top:         playersFromModel(l.Top),
		PlayerName:  l.PlayerName,
		PlayerScore: l.PlayerScore,
		PlayerRank:  l.PlayerRank,
	}
}
