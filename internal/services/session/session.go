// Package session runs one player's round of the puzzle: it owns the grid,
// the word list, the gesture tracker and the countdown, and it is the only
// place the round's outcome is decided.
//
// Every handler (gesture, tick, start, close) runs under a single mutex and
// tests the one outcome field before acting, so a winning commit and an
// expiry tick can never both finish the round. Callbacks into the caller
// run after the mutex is released.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/wordsearch-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/countdown"
	"github.com/mcoot/wordsearch-go/internal/services/generator"
	"github.com/mcoot/wordsearch-go/internal/services/scoring"
	"github.com/mcoot/wordsearch-go/internal/services/selection"
)

// DefaultWinDelay is the pause between winning and reporting the score,
// giving the celebration time to play out
const DefaultWinDelay = 2 * time.Second

// Config describes one player's round
type Config struct {
	Words      []string
	GridSize   int
	TimeLimit  int        // seconds, model.DefaultTimeLimit when 0
	StartTime  *time.Time // authoritative start, nil until known
	PlayerName string
	Players    []model.PlayerResult // used to restore a finished player

	// OnFinish receives the final score, at most once per session
	OnFinish func(score int)
	// Celebrate is fired when the round is won. It must not block.
	Celebrate func()
	// OnWordFound is fired after each matched word
	OnWordFound func(word string, found, total int)

	TickInterval time.Duration // countdown.DefaultTickInterval when 0
	WinDelay     time.Duration // DefaultWinDelay when 0
}

// Session is the aggregate for one player's round
type Session struct {
	mu     sync.Mutex
	name   string
	clock  clock.Clock
	logger *slog.Logger

	puzzle    *model.Puzzle // nil for restored sessions
	tracker   *selection.Tracker
	countdown *countdown.Countdown
	remaining int

	outcome model.Outcome
	score   int
	emitted bool
	closed  bool

	tickTimer   clock.Timer
	finishTimer clock.Timer

	onFinish     func(score int)
	celebrate    func()
	onWordFound  func(word string, found, total int)
	tickInterval time.Duration
	winDelay     time.Duration
}

// New creates a session. A player already marked finished in cfg.Players is
// restored straight into a terminal state: no grid, no clock, no callback.
func New(cfg Config, gen generator.GeneratorInterface, rnd random.Random, clk clock.Clock, logger *slog.Logger) (*Session, error) {
	timeLimit := cfg.TimeLimit
	if timeLimit == 0 {
		timeLimit = model.DefaultTimeLimit
	}
	if timeLimit < 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidTimeLimit, timeLimit)
	}

	s := &Session{
		name:         cfg.PlayerName,
		clock:        clk,
		logger:       logger.With(slog.String("player", cfg.PlayerName)),
		tracker:      selection.New(),
		countdown:    countdown.New(cfg.StartTime, timeLimit),
		outcome:      model.OutcomePlaying,
		onFinish:     cfg.OnFinish,
		celebrate:    cfg.Celebrate,
		onWordFound:  cfg.OnWordFound,
		tickInterval: cfg.TickInterval,
		winDelay:     cfg.WinDelay,
	}
	if s.tickInterval <= 0 {
		s.tickInterval = countdown.DefaultTickInterval
	}
	if s.winDelay <= 0 {
		s.winDelay = DefaultWinDelay
	}

	if restored := findFinished(cfg.Players, cfg.PlayerName); restored != nil {
		s.restore(*restored)
		return s, nil
	}

	puzzle, err := gen.Generate(cfg.Words, cfg.GridSize, rnd)
	if err != nil {
		return nil, err
	}
	s.puzzle = puzzle
	s.remaining = s.countdown.Remaining(clk.Now())

	if s.countdown.Running() {
		s.settleLocked()
	}

	s.logger.Info("session created",
		slog.Int("grid_size", cfg.GridSize),
		slog.Int("word_count", len(puzzle.Words)),
		slog.Int("placed_count", puzzle.PlacedCount()),
		slog.Int("time_limit", timeLimit),
		slog.Bool("clock_running", s.countdown.Running()),
	)

	return s, nil
}

func findFinished(players []model.PlayerResult, name string) *model.PlayerResult {
	for i := range players {
		if players[i].Name == name && players[i].Finished {
			return &players[i]
		}
	}
	return nil
}

// restore puts the session in the terminal state recorded for the player.
// A record without a known outcome is not assumed to be a win.
func (s *Session) restore(p model.PlayerResult) {
	switch p.Outcome {
	case model.OutcomeWon, model.OutcomeLost:
		s.outcome = p.Outcome
	default:
		s.outcome = model.OutcomeRestored
	}
	s.score = p.Score
	s.emitted = true
	s.remaining = s.countdown.TimeLimit

	s.logger.Info("session restored",
		slog.String("outcome", string(s.outcome)),
		slog.Int("score", s.score),
	)
}

// Start supplies the authoritative start time and starts the countdown
func (s *Session) Start(startTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.outcome.IsTerminal() {
		return model.ErrSessionFinished
	}
	if err := s.countdown.Start(startTime); err != nil {
		return err
	}
	s.settleLocked()
	return nil
}

// Begin starts a gesture on the cell at pos
func (s *Session) Begin(pos model.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.outcome.IsTerminal() {
		s.tracker.Reset()
		return model.ErrSessionFinished
	}
	if !s.countdown.Running() {
		return model.ErrClockNotStarted
	}
	if !s.puzzle.Grid.InBounds(pos) {
		return fmt.Errorf("%w: (%d,%d)", model.ErrInvalidPosition, pos.X, pos.Y)
	}

	s.tracker.Begin(pos)
	return nil
}

// Extend drags the current gesture to pos. It returns false when the
// extension is not a straight line from the anchor or there is no gesture.
func (s *Session) Extend(pos model.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.outcome.IsTerminal() {
		s.tracker.Reset()
		return false
	}
	if !s.puzzle.Grid.InBounds(pos) {
		return false
	}
	return s.tracker.Extend(pos)
}

// CancelGesture drops the current gesture without checking it
func (s *Session) CancelGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
}

// Commit releases the current gesture and checks it against the word list.
// Finding the last word wins the round.
func (s *Session) Commit() (selection.Result, error) {
	s.mu.Lock()

	if s.closed || s.outcome.IsTerminal() {
		s.tracker.Reset()
		s.mu.Unlock()
		return selection.Result{Index: -1}, model.ErrSessionFinished
	}

	result := s.tracker.Commit(s.puzzle.Grid, s.puzzle.Words)
	won := false
	found, total := model.FoundCount(s.puzzle.Words), len(s.puzzle.Words)
	if result.Matched {
		s.logger.Info("word found",
			slog.String("word", result.Word),
			slog.Int("found", found),
			slog.Int("total", total),
		)
		if model.AllFound(s.puzzle.Words) {
			s.winLocked()
			won = true
		}
	}
	celebrate, onWordFound := s.celebrate, s.onWordFound
	s.mu.Unlock()

	if result.Matched && onWordFound != nil {
		onWordFound(result.Word, found, total)
	}
	if won && celebrate != nil {
		celebrate()
	}
	return result, nil
}

// Tick reconciles the countdown against the clock once, declaring the round
// lost if time has run out
func (s *Session) Tick() {
	s.mu.Lock()
	lost := s.reconcileLocked()
	s.mu.Unlock()

	if lost {
		s.emit(0)
	}
}

// onTick is the scheduled one-second task
func (s *Session) onTick() {
	s.mu.Lock()
	if s.closed || s.outcome.IsTerminal() {
		s.mu.Unlock()
		return
	}
	lost := s.reconcileLocked()
	if !lost {
		s.armTick()
	}
	s.mu.Unlock()

	if lost {
		s.emit(0)
	}
}

// reconcileLocked recomputes the remaining time and reports whether this
// call transitioned the round to LOST
func (s *Session) reconcileLocked() bool {
	if s.closed || s.outcome.IsTerminal() || !s.countdown.Running() {
		return false
	}

	now := s.clock.Now()
	s.remaining = s.countdown.Remaining(now)
	if !s.countdown.Expired(now) {
		return false
	}

	s.outcome = model.OutcomeLost
	s.score = scoring.Score(float64(s.countdown.TimeLimit), false)
	s.tracker.Reset()
	s.stopTick()

	s.logger.Info("session lost",
		slog.Int("found", model.FoundCount(s.puzzle.Words)),
		slog.Int("total", len(s.puzzle.Words)),
	)
	return true
}

// settleLocked checks a freshly started countdown. A deadline that has
// already passed loses the round on the spot, and the zero score is
// reported through the clock so the caller is not called back before New
// or Start returns. Otherwise the tick is armed.
func (s *Session) settleLocked() {
	if !s.reconcileLocked() {
		s.armTick()
		return
	}
	s.finishTimer = s.clock.AfterFunc(0, func() {
		s.emit(0)
	})
}

// winLocked finishes the round as won and schedules the delayed report
func (s *Session) winLocked() {
	elapsed := s.countdown.Elapsed(s.clock.Now())
	s.outcome = model.OutcomeWon
	s.score = scoring.Score(elapsed, true)
	s.stopTick()

	score := s.score
	s.finishTimer = s.clock.AfterFunc(s.winDelay, func() {
		s.emit(score)
	})

	s.logger.Info("session won",
		slog.Float64("elapsed_seconds", elapsed),
		slog.Int("score", score),
	)
}

// emit reports the final score unless it has been reported already or the
// session has been closed
func (s *Session) emit(score int) {
	s.mu.Lock()
	if s.emitted || s.closed {
		s.mu.Unlock()
		return
	}
	s.emitted = true
	onFinish := s.onFinish
	s.mu.Unlock()

	if onFinish != nil {
		onFinish(score)
	}
}

func (s *Session) armTick() {
	s.tickTimer = s.clock.AfterFunc(s.tickInterval, s.onTick)
}

func (s *Session) stopTick() {
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
}

// Close tears the session down. Pending ticks and a pending win report are
// cancelled; a closed session never calls OnFinish.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopTick()
	if s.finishTimer != nil {
		s.finishTimer.Stop()
		s.finishTimer = nil
	}
	s.tracker.Reset()
}

// Outcome returns the current outcome
func (s *Session) Outcome() model.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Score returns the final score, 0 while playing
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// PlayerName returns the name of the player the session belongs to
func (s *Session) PlayerName() string {
	return s.name
}

// Snapshot returns a copy of the session's observable state
func (s *Session) Snapshot() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	clockState := s.countdown.State(s.clock.Now())
	clockState.Remaining = s.remaining

	state := model.SessionState{
		PlayerName: s.name,
		Outcome:    s.outcome,
		Score:      s.score,
		Selection:  s.tracker.State(),
		Clock:      clockState,
	}
	if s.puzzle != nil {
		state.Rows = s.puzzle.Grid.Rows()
		state.Found = s.puzzle.Grid.FoundMask()
		state.Words = append([]model.WordEntry(nil), s.puzzle.Words...)
		state.FoundCount = model.FoundCount(s.puzzle.Words)
	}
	return state
}

// Leaderboard ranks the given players once the round is over
func (s *Session) Leaderboard(players []model.PlayerResult) (model.Leaderboard, error) {
	s.mu.Lock()
	outcome := s.outcome
	s.mu.Unlock()

	if !outcome.IsTerminal() {
		return model.Leaderboard{}, model.ErrSessionNotFinished
	}
	return scoring.BuildLeaderboard(players, s.name, scoring.LeaderboardSize), nil
}
