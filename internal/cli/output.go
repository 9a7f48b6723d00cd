package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) println(args ...any) {
	_, _ = fmt.Fprintln(o.w, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Match:
		o.printMatch(v)
	case MatchList:
		o.printMatchList(v)
	case Session:
		o.printSession(v)
	case Extend:
		o.printExtend(v)
	case Commit:
		o.printCommit(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Puzzle:
		o.printPuzzle(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Finished bool   `json:"finished"`
	Outcome  string `json:"outcome,omitempty"`
}

// Match response type
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

// MatchList response type
type MatchList struct {
	Codes []string `json:"codes"`
}

// Position response type
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Word response type
type Word struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
}

// Selection response type
type Selection struct {
	Active bool       `json:"active"`
	Anchor *Position  `json:"anchor,omitempty"`
	Path   []Position `json:"path"`
}

// Clock response type
type Clock struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	TimeLimit int        `json:"time_limit"`
	Remaining int        `json:"remaining"`
	Display   string     `json:"display"`
}

// Session response type
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

// Extend response type
type Extend struct {
	Accepted bool    `json:"accepted"`
	Session  Session `json:"session"`
}

// Commit response type
type Commit struct {
	Matched   bool       `json:"matched"`
	Word      string     `json:"word,omitempty"`
	Index     int        `json:"index"`
	Candidate string     `json:"candidate"`
	Path      []Position `json:"path"`
	Session   Session    `json:"session"`
}

// Leaderboard response type
type Leaderboard struct {
	Top         []Player `json:"top"`
	PlayerName  string   `json:"player_name,omitempty"`
	PlayerScore int      `json:"player_score"`
	PlayerRank  int      `json:"player_rank"`
}

// Puzzle is a locally generated grid
type Puzzle struct {
	Rows       []string          `json:"rows"`
	Words      []string          `json:"words"`
	Placements []PuzzlePlacement `json:"placements,omitempty"`
}

// PuzzlePlacement describes where a word was hidden
type PuzzlePlacement struct {
	Word      string    `json:"word"`
	Placed    bool      `json:"placed"`
	Start     *Position `json:"start,omitempty"`
	Direction string    `json:"direction,omitempty"`
}

// HealthResult is the health response plus what the CLI measured
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
}

func (o *Output) printMatch(m Match) {
	o.printf("Match: %s\n", m.Code)
	o.printf("Grid Size: %d\n", m.GridSize)
	o.printf("Time Limit: %ds\n", m.TimeLimit)
	if m.Seeded {
		o.println("Seeded: yes")
	}
	if m.Started && m.StartTime != nil {
		o.printf("Started: %s\n", m.StartTime.UTC().Format(time.RFC3339))
	} else {
		o.println("Started: no")
	}
	o.printf("Words: %s\n", strings.Join(m.Words, ", "))
	o.printf("Players (%d):\n", len(m.Players))
	for _, p := range m.Players {
		if p.Finished {
			o.printf("  - %s: %d (%s)\n", p.Name, p.Score, p.Outcome)
		} else {
			o.printf("  - %s: playing\n", p.Name)
		}
	}
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Codes) == 0 {
		o.println("No matches")
		return
	}
	for _, code := range l.Codes {
		o.println(code)
	}
}

func (o *Output) printSession(s Session) {
	o.printf("Player: %s\n", s.PlayerName)
	o.printf("Outcome: %s\n", s.Outcome)
	if s.Outcome == "WON" || s.Outcome == "LOST" || s.Outcome == "RESTORED" {
		o.printf("Score: %d\n", s.Score)
	}
	if s.Clock.StartTime != nil {
		o.printf("Time Left: %s\n", s.Clock.Display)
	} else {
		o.println("Time Left: waiting for start")
	}

	if len(s.Rows) > 0 {
		o.println()
		o.printGrid(s.Rows, s.Found)
	}

	if len(s.Words) > 0 {
		o.printf("\nWords (%d/%d):\n", s.FoundCount, len(s.Words))
		for _, w := range s.Words {
			mark := " "
			if w.Found {
				mark = "x"
			}
			o.printf("  [%s] %s\n", mark, w.Word)
		}
	}
}

func (o *Output) printExtend(e Extend) {
	if e.Accepted {
		o.println("Selection extended")
	} else {
		o.println("Selection unchanged")
	}
	if len(e.Session.Selection.Path) > 0 {
		o.printf("Path: %s\n", formatPath(e.Session.Selection.Path))
	}
}

func (o *Output) printCommit(c Commit) {
	if c.Matched {
		o.printf("Found %s!\n", c.Word)
	} else if c.Candidate != "" {
		o.printf("No match: %s\n", c.Candidate)
	} else {
		o.println("Nothing selected")
	}
	o.printf("Words: %d/%d\n", c.Session.FoundCount, len(c.Session.Words))
	switch c.Session.Outcome {
	case "WON":
		o.printf("All words found! Score: %d\n", c.Session.Score)
	case "LOST":
		o.println("Out of time")
	default:
		o.printf("Time Left: %s\n", c.Session.Clock.Display)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	o.println("Leaderboard:")
	for i, p := range l.Top {
		o.printf("  %d. %s: %d\n", i+1, p.Name, p.Score)
	}
	if l.PlayerName != "" {
		o.printf("\nYou (%s): %d, rank %d\n", l.PlayerName, l.PlayerScore, l.PlayerRank)
	}
}

func (o *Output) printPuzzle(p Puzzle) {
	o.printGrid(p.Rows, nil)
	o.printf("\nWords: %s\n", strings.Join(p.Words, ", "))
	if len(p.Placements) > 0 {
		o.println("\nPlacements:")
		for _, pl := range p.Placements {
			if !pl.Placed || pl.Start == nil {
				o.printf("  %s: not placed\n", pl.Word)
				continue
			}
			o.printf("  %s: %d,%d %s\n", pl.Word, pl.Start.X, pl.Start.Y, pl.Direction)
		}
	}
}

// printGrid draws the letter grid with coordinates. Found cells are lowercase.
func (o *Output) printGrid(rows []string, found [][]bool) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)

	// Print column headers
	o.printf("    ")
	for col := 0; col < size; col++ {
		o.printf("%2d ", col)
	}
	o.println()

	// Print top border
	o.printf("   +")
	o.printf("%s", strings.Repeat("---", size))
	o.println("+")

	// Print rows
	for row, line := range rows {
		o.printf("%2d |", row)
		for col, letter := range []rune(line) {
			if row < len(found) && col < len(found[row]) && found[row][col] {
				letter = unicode.ToLower(letter)
			}
			o.printf(" %c ", letter)
		}
		o.println("|")
	}

	// Print bottom border
	o.printf("   +")
	o.printf("%s", strings.Repeat("---", size))
	o.println("+")
}

func (o *Output) printHealthResult(h HealthResult) {
	o.printf("Status: %s\n", h.Status)
	if h.Server != "" {
		o.printf("Server: %s (%dms)\n", h.Server, h.LatencyMS)
	}
}

func formatPath(path []Position) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
