package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/generator"
	"github.com/mcoot/wordsearch-go/internal/services/match"
	"github.com/mcoot/wordsearch-go/internal/services/wordlist"
)

func newGenerateCmd() *cobra.Command {
	var (
		words     []string
		wordsFile string
		gridSize  int
		seed      int64
		count     int
		reveal    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a grid locally without a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if wordsFile != "" {
				fromFile, err := wordlist.LoadFile(wordsFile)
				if err != nil {
					return err
				}
				words = append(words, fromFile...)
			}

			var rnd random.Random = random.New()
			if cmd.Flags().Changed("seed") {
				rnd = random.NewSeeded(seed)
			}
			if count > 0 {
				words = wordlist.Pick(words, count, rnd)
			}

			mc, err := match.ValidateConfig(model.MatchConfig{Words: words, GridSize: gridSize})
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			puzzle, err := generator.New(logger).Generate(mc.Words, mc.GridSize, rnd)
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(puzzleFromModel(puzzle, reveal))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&words, "words", nil, "Comma-separated words to hide")
	cmd.Flags().StringVar(&wordsFile, "words-file", "", "File with one word per line")
	cmd.Flags().IntVar(&gridSize, "grid-size", 0, "Grid size (default 15)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible grid")
	cmd.Flags().IntVar(&count, "count", 0, "Hide only this many words, picked at random from the list")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Show where each word was hidden")

	return cmd
}

func puzzleFromModel(p *model.Puzzle, reveal bool) Puzzle {
	out := Puzzle{
		Rows:  p.Grid.Rows(),
		Words: make([]string, len(p.Words)),
	}
	for i, w := range p.Words {
		out.Words[i] = w.Word
	}
	if !reveal {
		return out
	}

	out.Placements = make([]PuzzlePlacement, len(p.Placements))
	for i, pl := range p.Placements {
		out.Placements[i] = PuzzlePlacement{Word: pl.Word, Placed: pl.Placed}
		if pl.Placed {
			out.Placements[i].Start = &Position{X: pl.Start.X, Y: pl.Start.Y}
			out.Placements[i].Direction = pl.Direction.String()
		}
	}
	return out
}
