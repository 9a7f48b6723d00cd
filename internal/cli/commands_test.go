package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch-go/internal/api"
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/factory"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/testutil"
)

const commandSeed int64 = 21

type CommandSuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandSuite))
}

func (s *CommandSuite) SetupTest() {
	s.T().Setenv("WSGAME_PLAYER", "")
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		MatchController: s.app.MatchController,
		Events:          s.app.Events,
	}))
}

func (s *CommandSuite) TearDownTest() {
	s.server.Close()
	_ = s.app.Close()
}

// run executes the CLI in-process and returns everything it wrote
func (s *CommandSuite) run(args ...string) (string, error) {
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--server", s.server.URL, "-o", "json"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func (s *CommandSuite) runJSON(v any, args ...string) {
	out, err := s.run(args...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), v), out)
}

func (s *CommandSuite) createMatch() string {
	s.app.MockRandom.QueueString("QWE234")
	var m Match
	s.runJSON(&m, "match", "create", "--words", "cat,dog", "--grid-size", "10",
		"--time-limit", "60", "--seed", fmt.Sprint(commandSeed))
	return m.Code
}

func (s *CommandSuite) placements() []model.Placement {
	puzzle, err := s.app.Generator.Generate([]string{"CAT", "DOG"}, 10, random.NewSeeded(commandSeed))
	s.Require().NoError(err)
	return puzzle.Placements
}

func span(p model.Placement) (string, string) {
	end := p.End()
	return fmt.Sprintf("%d,%d", p.Start.X, p.Start.Y), fmt.Sprintf("%d,%d", end.X, end.Y)
}

func (s *CommandSuite) TestHealth() {
	var h HealthResult
	s.runJSON(&h, "health")
	s.Equal("ok", h.Status)
	s.Equal(s.server.URL, h.Server)
}

func (s *CommandSuite) TestRejectsUnknownOutputFormat() {
	out, err := s.run("-o", "yaml", "health")
	s.Require().Error(err)
	s.Contains(out, `unknown output format "yaml"`)
}

func (s *CommandSuite) TestRejectsBadServerURL() {
	out, err := s.run("--server", "localhost:8080", "health")
	s.Require().Error(err)
	s.Contains(out, "invalid server URL")
}

func (s *CommandSuite) TestMatchCreateAndGet() {
	code := s.createMatch()
	s.Equal("QWE234", code)

	var m Match
	s.runJSON(&m, "match", "get", "qwe234")
	s.Equal([]string{"CAT", "DOG"}, m.Words)
	s.Equal(10, m.GridSize)
	s.Equal(60, m.TimeLimit)
	s.True(m.Seeded)
	s.False(m.Started)

	var list MatchList
	s.runJSON(&list, "match", "list")
	s.Equal([]string{"QWE234"}, list.Codes)
}

func (s *CommandSuite) TestMatchCreateFromWordsFile() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("# animals\ncat\n\n dog \n"), 0o644))

	var m Match
	s.runJSON(&m, "match", "create", "--words-file", path, "--words", "emu")
	s.Equal([]string{"EMU", "CAT", "DOG"}, m.Words)
	s.Equal(model.DefaultGridSize, m.GridSize)
}

func (s *CommandSuite) TestMatchCreateRequiresWords() {
	out, err := s.run("match", "create")
	s.Error(err)
	s.Contains(out, "at least one word")
}

func (s *CommandSuite) TestPlayRound() {
	code := s.createMatch()

	var sess Session
	s.runJSON(&sess, "play", "--player", "ana", "join", code)
	s.Equal("ana", sess.PlayerName)
	s.Equal("PLAYING", sess.Outcome)
	s.Nil(sess.Clock.StartTime)

	var m Match
	s.runJSON(&m, "match", "start", code)
	s.True(m.Started)

	s.app.MockClock.Advance(15 * time.Second)

	pl := s.placements()
	from, to := span(pl[0])

	var commit Commit
	s.runJSON(&commit, "play", "--player", "ana", "select", code, from, to)
	s.True(commit.Matched)
	s.Equal("CAT", commit.Word)
	s.Equal("0:45", commit.Session.Clock.Display)

	// Released in reverse
	from, to = span(pl[1])
	s.runJSON(&commit, "play", "--player", "ana", "select", code, to, from)
	s.True(commit.Matched)
	s.Equal("DOG", commit.Word)
	s.Equal("WON", commit.Session.Outcome)
	s.Equal(970, commit.Session.Score)

	s.app.MockClock.Advance(2 * time.Second)

	var board Leaderboard
	s.runJSON(&board, "match", "leaderboard", code, "--player", "ana")
	s.Require().Len(board.Top, 1)
	s.Equal(970, board.Top[0].Score)
	s.Equal(1, board.PlayerRank)
}

func (s *CommandSuite) TestPlayShowAndCancel() {
	code := s.createMatch()

	var sess Session
	s.runJSON(&sess, "play", "--player", "ana", "join", code)

	s.runJSON(&sess, "play", "--player", "ana", "show", code)
	s.Len(sess.Rows, 10)
	s.Len(sess.Words, 2)

	out, err := s.run("play", "--player", "ana", "cancel", code)
	s.Require().NoError(err, out)
	s.Contains(out, "Selection cancelled")
}

func (s *CommandSuite) TestPlayBeforeStart() {
	code := s.createMatch()

	var sess Session
	s.runJSON(&sess, "play", "--player", "ana", "join", code)

	out, err := s.run("play", "--player", "ana", "select", code, "0,0", "2,0")
	s.Error(err)
	s.Contains(out, "CLOCK_NOT_STARTED")
}

func (s *CommandSuite) TestPlayRequiresPlayer() {
	code := s.createMatch()

	out, err := s.run("play", "show", code)
	s.Error(err)
	s.Contains(out, "player name is required")
}

func (s *CommandSuite) TestPlayUnknownPlayer() {
	code := s.createMatch()

	out, err := s.run("play", "--player", "ghost", "show", code)
	s.Error(err)
	s.Contains(out, "PLAYER_NOT_FOUND")
}

func (s *CommandSuite) TestMatchDelete() {
	code := s.createMatch()

	out, err := s.run("match", "delete", code)
	s.Require().NoError(err, out)
	s.Contains(out, "Deleted match "+code)

	out, err = s.run("match", "get", code)
	s.Error(err)
	s.Contains(out, "MATCH_NOT_FOUND")
}

func (s *CommandSuite) TestGenerateMatchesSeededServerGrid() {
	code := s.createMatch()

	var sess Session
	s.runJSON(&sess, "play", "--player", "ana", "join", code)

	var puzzle Puzzle
	s.runJSON(&puzzle, "generate", "--words", "cat,dog", "--grid-size", "10",
		"--seed", fmt.Sprint(commandSeed), "--reveal")
	s.Equal(sess.Rows, puzzle.Rows)
	s.Require().Len(puzzle.Placements, 2)
	s.True(puzzle.Placements[0].Placed)
}

func (s *CommandSuite) TestGenerateRejectsBadGridSize() {
	out, err := s.run("generate", "--words", "cat", "--grid-size", "4")
	s.Error(err)
	s.Contains(out, "grid size")
}

func (s *CommandSuite) TestMatchWatch() {
	code := s.createMatch()

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := s.run("match", "watch", code, "--until", "player-joined")
		done <- result{out, err}
	}()

	s.Require().Eventually(func() bool {
		hub := s.app.Events.GetHub(model.MatchCode(code))
		return hub != nil && hub.ClientCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	_, err := s.app.MatchController.JoinMatch(context.Background(), model.MatchCode(code), "ana")
	s.Require().NoError(err)

	select {
	case r := <-done:
		s.Require().NoError(r.err, r.out)
		lines := strings.Split(strings.TrimSpace(r.out), "\n")
		s.Require().Len(lines, 2)
		s.JSONEq(`{"event":"connected","data":{"status":"connected"}}`, lines[0])
		s.JSONEq(`{"event":"player-joined","data":{"player":"ana"}}`, lines[1])
	case <-time.After(5 * time.Second):
		s.Fail("watch did not stop after player-joined")
	}
}

func (s *CommandSuite) TestMatchWatchUnknownMatch() {
	out, err := s.run("match", "watch", "NOPE99")
	s.Error(err)
	s.Contains(out, "MATCH_NOT_FOUND")
}

func (s *CommandSuite) TestGeneratePicksWordsFromFile() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("cat\ndog\nemu\nowl\nyak\n"), 0o644))

	var puzzle Puzzle
	s.runJSON(&puzzle, "generate", "--words-file", path, "--count", "2", "--seed", "3")
	s.Len(puzzle.Words, 2)
	s.Len(puzzle.Rows, model.DefaultGridSize)
	s.Empty(puzzle.Placements, "placements are hidden without --reveal")
	s.Subset([]string{"CAT", "DOG", "EMU", "OWL", "YAK"}, puzzle.Words)
}
