package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/model"
)

// MaxPlacementAttempts is how many random spots are tried per word before it is skipped
const MaxPlacementAttempts = 100

// Alphabet is the set of letters used to fill the grid
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator builds letter grids with hidden words
type Generator struct {
	logger *slog.Logger
}

// New creates a new Generator
func New(logger *slog.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// Generate lays every word into a size×size grid and fills the rest with
// random letters. Words that cannot be placed are skipped, not reported as
// errors; their Placement has Placed=false.
func (g *Generator) Generate(words []string, size int, rnd random.Random) (*model.Puzzle, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidGridSize, size)
	}

	normalized := NormalizeWords(words)
	grid := model.NewGrid(size)
	placements := make([]model.Placement, len(normalized))

	for i, word := range normalized {
		placements[i] = g.place(grid, word, i, rnd)
		if !placements[i].Placed {
			g.logger.Debug("word could not be placed",
				slog.String("word", word),
				slog.Int("grid_size", size),
				slog.Int("attempts", placements[i].Attempts),
			)
		}
	}

	fill(grid, rnd)

	return &model.Puzzle{
		Grid:       grid,
		Words:      model.NewWordEntries(normalized),
		Placements: placements,
	}, nil
}

// place tries up to MaxPlacementAttempts random spots for a word
func (g *Generator) place(grid *model.Grid, word string, index int, rnd random.Random) model.Placement {
	directions := model.PlacementDirections()
	result := model.Placement{Word: word, Index: index}

	for attempt := 1; attempt <= MaxPlacementAttempts; attempt++ {
		dir := directions[rnd.Intn(len(directions))]
		start := model.Position{X: rnd.Intn(grid.Size), Y: rnd.Intn(grid.Size)}

		if canPlace(grid, word, start, dir) {
			write(grid, word, start, dir)
			result.Placed = true
			result.Start = start
			result.Direction = dir
			result.Attempts = attempt
			return result
		}
	}

	result.Attempts = MaxPlacementAttempts
	return result
}

// canPlace checks bounds and that every covered cell is empty or already
// carries the letter the word needs there
func canPlace(grid *model.Grid, word string, start model.Position, dir model.Direction) bool {
	n := len(word) - 1
	end := model.Position{X: start.X + n*dir.DX, Y: start.Y + n*dir.DY}
	if !grid.InBounds(start) || !grid.InBounds(end) {
		return false
	}

	for i := 0; i < len(word); i++ {
		existing := grid.Letter(model.Position{X: start.X + i*dir.DX, Y: start.Y + i*dir.DY})
		if existing != 0 && existing != rune(word[i]) {
			return false
		}
	}
	return true
}

func write(grid *model.Grid, word string, start model.Position, dir model.Direction) {
	for i := 0; i < len(word); i++ {
		grid.At(model.Position{X: start.X + i*dir.DX, Y: start.Y + i*dir.DY}).Letter = rune(word[i])
	}
}

// fill puts a random letter in every empty cell, row by row
func fill(grid *model.Grid, rnd random.Random) {
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			cell := &grid.Cells[y][x]
			if cell.Letter == 0 {
				cell.Letter = rune(Alphabet[rnd.Intn(len(Alphabet))])
			}
		}
	}
}

// NormalizeWord uppercases a word and strips everything but A-Z
func NormalizeWord(word string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(word) {
		if r >= 'A' && r <= 'Z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// NormalizeWords normalizes a word list, dropping words left empty.
// Order and duplicates are preserved.
func NormalizeWords(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if n := NormalizeWord(w); n != "" {
			result = append(result, n)
		}
	}
	return result
}

// Interface for dependency injection
type GeneratorInterface interface {
	Generate(words []string, size int, rnd random.Random) (*model.Puzzle, error)
}

var _ GeneratorInterface = (*Generator)(nil)
