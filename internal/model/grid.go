package model

import "strings"

// Position identifies a cell on the grid
type Position struct {
	X int // column, 0-indexed from left
	Y int // row, 0-indexed from top
}

// Cell is a single lettered square of a grid
type Cell struct {
	X      int
	Y      int
	Letter rune // 0 means empty (only during generation)
	Found  bool // set once the word covering this cell is matched, never cleared
}

// Grid is the square letter matrix presented to the player
type Grid struct {
	Size  int
	Cells [][]Cell // Row-major: Cells[y][x]
}

// NewGrid creates an empty grid of the given size
func NewGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
		for x := range cells[y] {
			cells[y][x] = Cell{X: x, Y: y}
		}
	}
	return &Grid{
		Size:  size,
		Cells: cells,
	}
}

// InBounds returns true if the position is within the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.Size && pos.Y >= 0 && pos.Y < g.Size
}

// At returns the cell at the given position, or nil if out of bounds
func (g *Grid) At(pos Position) *Cell {
	if !g.InBounds(pos) {
		return nil
	}
	return &g.Cells[pos.Y][pos.X]
}

// Letter returns the letter at the given position, or 0 if empty or out of bounds
func (g *Grid) Letter(pos Position) rune {
	cell := g.At(pos)
	if cell == nil {
		return 0
	}
	return cell.Letter
}

// IsFull returns true if every cell holds a letter
func (g *Grid) IsFull() bool {
	return g.EmptyCount() == 0
}

// EmptyCount returns the number of cells without a letter
func (g *Grid) EmptyCount() int {
	count := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.Cells[y][x].Letter == 0 {
				count++
			}
		}
	}
	return count
}

// ReadPath concatenates the letters along a path of positions
func (g *Grid) ReadPath(path []Position) string {
	var sb strings.Builder
	for _, pos := range path {
		if letter := g.Letter(pos); letter != 0 {
			sb.WriteRune(letter)
		}
	}
	return sb.String()
}

// Rows returns each row of the grid as a string
func (g *Grid) Rows() []string {
	rows := make([]string, g.Size)
	for y := 0; y < g.Size; y++ {
		var sb strings.Builder
		for x := 0; x < g.Size; x++ {
			letter := g.Cells[y][x].Letter
			if letter == 0 {
				letter = '.'
			}
			sb.WriteRune(letter)
		}
		rows[y] = sb.String()
	}
	return rows
}

// FoundMask returns the found flag of every cell, row-major
func (g *Grid) FoundMask() [][]bool {
	mask := make([][]bool, g.Size)
	for y := 0; y < g.Size; y++ {
		mask[y] = make([]bool, g.Size)
		for x := 0; x < g.Size; x++ {
			mask[y][x] = g.Cells[y][x].Found
		}
	}
	return mask
}
