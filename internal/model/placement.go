package model

// Direction is a unit step used to lay a word into the grid
type Direction struct {
	DX int
	DY int
}

// Placement directions. Words are only ever written forwards along these.
var (
	DirRight     = Direction{DX: 1, DY: 0}
	DirDown      = Direction{DX: 0, DY: 1}
	DirDownRight = Direction{DX: 1, DY: 1}
)

// PlacementDirections lists the directions in the order the generator draws from
func PlacementDirections() []Direction {
	return []Direction{DirRight, DirDown, DirDownRight}
}

// String returns a human-readable name for the direction
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirDownRight:
		return "down-right"
	default:
		return "unknown"
	}
}

// Placement records where (and whether) a word was written into the grid
type Placement struct {
	Word      string
	Index     int // position of the word in the puzzle's word list
	Placed    bool
	Start     Position
	Direction Direction
	Attempts  int // attempts consumed, MaxPlacementAttempts when skipped
}

// End returns the position of the word's last letter
func (p Placement) End() Position {
	n := len(p.Word) - 1
	return Position{
		X: p.Start.X + n*p.Direction.DX,
		Y: p.Start.Y + n*p.Direction.DY,
	}
}

// Cells returns every position the placed word covers, in reading order
func (p Placement) Cells() []Position {
	if !p.Placed {
		return nil
	}
	cells := make([]Position, len(p.Word))
	for i := range cells {
		cells[i] = Position{
			X: p.Start.X + i*p.Direction.DX,
			Y: p.Start.Y + i*p.Direction.DY,
		}
	}
	return cells
}

// Puzzle is the output of grid generation
type Puzzle struct {
	Grid       *Grid
	Words      []WordEntry
	Placements []Placement // one per word, same order as Words
}

// PlacedCount returns how many words made it into the grid
func (p *Puzzle) PlacedCount() int {
	count := 0
	for _, pl := range p.Placements {
		if pl.Placed {
			count++
		}
	}
	return count
}
