// Package selection tracks a pointer gesture across the grid and decides
// whether the finished gesture spells one of the puzzle's words.
package selection

import (
	"github.com/mcoot/wordsearch-go/internal/model"
)

// Result describes the outcome of committing a gesture
type Result struct {
	Matched   bool
	Word      string // matched word, empty on a miss
	Index     int    // index of the matched entry, -1 on a miss
	Candidate string // letters read along the path
	Path      []model.Position
}

// Tracker is the IDLE/SELECTING state machine for one player's gestures.
// It is not safe for concurrent use; the owning session serializes access.
type Tracker struct {
	anchor *model.Position
	path   []model.Position
}

// New creates an idle Tracker
func New() *Tracker {
	return &Tracker{}
}

// Active returns true while a gesture is in progress
func (t *Tracker) Active() bool {
	return t.anchor != nil
}

// Begin starts a gesture anchored on pos
func (t *Tracker) Begin(pos model.Position) {
	anchor := pos
	t.anchor = &anchor
	t.path = []model.Position{pos}
}

// Extend moves the gesture's free end to pos. The path is rebuilt as the
// straight line from the anchor to pos when that line is horizontal,
// vertical or a 45° diagonal in either direction; otherwise the path is
// left untouched and false is returned.
func (t *Tracker) Extend(pos model.Position) bool {
	if t.anchor == nil {
		return false
	}

	line, ok := Line(*t.anchor, pos)
	if !ok {
		return false
	}
	t.path = line
	return true
}

// Commit ends the gesture and checks the letters along the path against the
// word list. The first unfound entry equal to the letters, read forwards or
// backwards, is marked found along with every cell of the path. The tracker
// is reset whether or not anything matched.
func (t *Tracker) Commit(grid *model.Grid, words []model.WordEntry) Result {
	if t.anchor == nil {
		return Result{Index: -1}
	}
	defer t.Reset()

	path := t.path
	candidate := grid.ReadPath(path)
	reversed := reverse(candidate)
	result := Result{Index: -1, Candidate: candidate, Path: path}

	for i := range words {
		if words[i].Found {
			continue
		}
		if words[i].Word != candidate && words[i].Word != reversed {
			continue
		}

		words[i].Found = true
		for _, pos := range path {
			if cell := grid.At(pos); cell != nil {
				cell.Found = true
			}
		}
		result.Matched = true
		result.Word = words[i].Word
		result.Index = i
		return result
	}

	return result
}

// Reset abandons the current gesture without side effects
func (t *Tracker) Reset() {
	t.anchor = nil
	t.path = nil
}

// State returns a copy of the current gesture
func (t *Tracker) State() model.Selection {
	sel := model.Selection{Active: t.anchor != nil}
	if t.anchor != nil {
		anchor := *t.anchor
		sel.Anchor = &anchor
		sel.Path = append([]model.Position(nil), t.path...)
	}
	return sel
}

// Line returns every cell from a to b inclusive when the two lie on a
// horizontal, vertical or diagonal line
func Line(a, b model.Position) ([]model.Position, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return nil, false
	}

	steps := max(abs(dx), abs(dy))
	stepX, stepY := sign(dx), sign(dy)

	line := make([]model.Position, steps+1)
	for i := 0; i <= steps; i++ {
		line[i] = model.Position{X: a.X + i*stepX, Y: a.Y + i*stepY}
	}
	return line, true
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
