package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match as a named player",
		Long: `Play a match as a named player.

The player name comes from --player or WSGAME_PLAYER. Positions are written
as x,y with 0,0 in the top-left corner.`,
	}

	cmd.PersistentFlags().StringVar(&cfg.Player, "player", cfg.Player, "Player name (env: WSGAME_PLAYER)")

	cmd.AddCommand(newPlayJoinCmd())
	cmd.AddCommand(newPlayShowCmd())
	cmd.AddCommand(newPlaySelectCmd())
	cmd.AddCommand(newPlayCancelCmd())

	return cmd
}

type joinRequest struct {
	Name string `json:"name"`
}

type selectRequest struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func newPlayJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Player == "" {
				return errNoPlayer
			}

			var result Session

			if err := client.Post(matchPath(args[0])+"/players", joinRequest{Name: cfg.Player}, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show your grid, words and remaining time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0])
			if err != nil {
				return err
			}

			var result Session

			if err := client.Get(path+"/session", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlaySelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <code> <x1,y1> <x2,y2>",
		Short: "Drag a straight line from one cell to another and release",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0])
			if err != nil {
				return err
			}
			from, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[2])
			if err != nil {
				return err
			}

			var result Commit

			if err := client.Post(path+"/select", selectRequest{From: from, To: to}, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <code>",
		Short: "Drop the current selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0])
			if err != nil {
				return err
			}

			if err := client.Post(path+"/gesture/cancel", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.PrintMessage("Selection cancelled")
			return nil
		},
	}
}

var errNoPlayer = fmt.Errorf("player name is required (--player or WSGAME_PLAYER)")

func playerPath(code string) (string, error) {
	if cfg.Player == "" {
		return "", errNoPlayer
	}
	return matchPath(code) + "/players/" + url.PathEscape(cfg.Player), nil
}

// parsePosition parses "x,y"
func parsePosition(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("invalid position %q: expected x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return Position{X: x, Y: y}, nil
}
