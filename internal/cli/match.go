package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearch-go/internal/services/wordlist"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match management commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchDeleteCmd())
	cmd.AddCommand(newMatchLeaderboardCmd())
	cmd.AddCommand(newMatchWatchCmd())

	return cmd
}

type createMatchRequest struct {
	Words     []string `json:"words"`
	GridSize  int      `json:"grid_size,omitempty"`
	TimeLimit int      `json:"time_limit,omitempty"`
	Seed      *int64   `json:"seed,omitempty"`
}

func newMatchCreateCmd() *cobra.Command {
	var (
		words     []string
		wordsFile string
		gridSize  int
		timeLimit int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := createMatchRequest{
				Words:     words,
				GridSize:  gridSize,
				TimeLimit: timeLimit,
			}
			if wordsFile != "" {
				fromFile, err := wordlist.LoadFile(wordsFile)
				if err != nil {
					return err
				}
				req.Words = append(req.Words, fromFile...)
			}
			if len(req.Words) == 0 {
				return fmt.Errorf("at least one word is required (--words or --words-file)")
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			var result Match

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&words, "words", nil, "Comma-separated words to hide")
	cmd.Flags().StringVar(&wordsFile, "words-file", "", "File with one word per line")
	cmd.Flags().IntVar(&gridSize, "grid-size", 0, "Grid size (default: server default)")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 0, "Time limit in seconds (default: server default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed so every player gets the same grid")

	return cmd
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get match details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Get(matchPath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List match codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList

			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the match clock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Post(matchPath(args[0])+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Delete(matchPath(code)); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted match %s", code))
			return nil
		},
	}
}

func newMatchLeaderboardCmd() *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "leaderboard <code>",
		Short: "Show the match leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := matchPath(args[0]) + "/leaderboard"
			if player != "" {
				path += "?player=" + url.QueryEscape(player)
			}

			var result Leaderboard

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Include this player's rank")

	return cmd
}

func newMatchWatchCmd() *cobra.Command {
	var until string

	cmd := &cobra.Command{
		Use:   "watch <code>",
		Short: "Follow match events as they happen",
		Long: `Connect to the match's event stream and print events as they arrive.

Events include:
  - player-joined: A new player joined the match
  - match-started: The shared clock started
  - word-found: A player found a word
  - player-won: A player found every word
  - player-finished: A player won or ran out of time
  - match-deleted: The match was removed; the stream ends

Press Ctrl+C to disconnect.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := matchPath(args[0]) + "/events"
			if cfg.Player != "" {
				path += "?player=" + url.QueryEscape(cfg.Player)
			}

			out := cmd.OutOrStdout()
			err := client.Stream(cmd.Context(), path, func(event, data string) error {
				if cfg.Output == FormatJSON {
					line, err := json.Marshal(watchEvent{Event: event, Data: json.RawMessage(data)})
					if err != nil {
						return fmt.Errorf("invalid event data: %w", err)
					}
					_, _ = fmt.Fprintln(out, string(line))
				} else {
					_, _ = fmt.Fprintf(out, "%s %s\n", event, data)
				}
				if until != "" && event == until {
					return errStopWatching
				}
				return nil
			})
			if errors.Is(err, errStopWatching) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&until, "until", "", "Stop after this event (e.g. player-finished)")

	return cmd
}

// watchEvent is one line of `match watch -o json`
type watchEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var errStopWatching = errors.New("stop watching")

func matchPath(code string) string {
	return "/api/v1/matches/" + url.PathEscape(strings.ToUpper(code))
}
