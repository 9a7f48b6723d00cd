package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch-go/internal/dependencies/mocks"
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/events"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/generator"
	"github.com/mcoot/wordsearch-go/internal/services/session"
	"github.com/mcoot/wordsearch-go/internal/storage/memory"
	"github.com/mcoot/wordsearch-go/internal/testutil"
)

const testSeed int64 = 7

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	generator  *generator.Generator
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	publisher  *recordingPublisher
	ctx        context.Context
}

type recordingPublisher struct {
	mu      sync.Mutex
	events  []string
	sent    []events.Event
	removed []model.MatchCode
}

func (p *recordingPublisher) Publish(code model.MatchCode, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, string(code)+":"+event.Name)
	p.sent = append(p.sent, event)
}

func (p *recordingPublisher) last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[len(p.sent)-1]
}

func (p *recordingPublisher) RemoveHub(code model.MatchCode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removed = append(p.removed, code)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.generator = generator.New(testutil.NopLogger())
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.random.Fallback = random.NewSeeded(99)
	s.publisher = &recordingPublisher{}
	s.controller = NewController(s.storage, s.generator, s.clock, s.random, s.publisher, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) TearDownTest() {
	s.controller.Close()
}

func (s *ControllerSuite) createSeeded(code string) *model.Match {
	s.random.QueueString(code)
	seed := testSeed
	m, err := s.controller.CreateMatch(s.ctx, model.MatchConfig{
		Words:    []string{"cat", "dog"},
		GridSize: 10,
		Seed:     &seed,
	})
	s.Require().NoError(err)
	return m
}

// solve finds every word using the placements of the seeded grid
func (s *ControllerSuite) solve(sess *session.Session) {
	puzzle, err := s.generator.Generate([]string{"CAT", "DOG"}, 10, random.NewSeeded(testSeed))
	s.Require().NoError(err)

	for _, p := range puzzle.Placements {
		s.Require().True(p.Placed)
		s.Require().NoError(sess.Begin(p.Start))
		s.Require().True(sess.Extend(p.End()))
		result, err := sess.Commit()
		s.Require().NoError(err)
		s.Require().True(result.Matched)
	}
}

// CreateMatch tests

func (s *ControllerSuite) TestCreateMatchAppliesDefaults() {
	s.random.QueueString("ABC234")

	m, err := s.controller.CreateMatch(s.ctx, model.MatchConfig{Words: []string{" cat ", "Dog!"}})
	s.Require().NoError(err)

	s.Equal(model.MatchCode("ABC234"), m.Code)
	s.Equal([]string{"CAT", "DOG"}, m.Config.Words)
	s.Equal(model.DefaultGridSize, m.Config.GridSize)
	s.Equal(model.DefaultTimeLimit, m.Config.TimeLimit)
	s.False(m.IsStarted())
	s.Empty(m.Players)

	stored, err := s.storage.GetMatch(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(m.Config, stored.Config)
}

func (s *ControllerSuite) TestCreateMatchRetriesCodeCollision() {
	s.createSeeded("AAAAAA")
	s.random.QueueString("AAAAAA", "BBBBBB")

	m, err := s.controller.CreateMatch(s.ctx, model.MatchConfig{Words: []string{"cat"}})
	s.Require().NoError(err)
	s.Equal(model.MatchCode("BBBBBB"), m.Code)
}

func (s *ControllerSuite) TestCreateMatchValidation() {
	tests := []struct {
		name string
		cfg  model.MatchConfig
		err  error
	}{
		{"no words", model.MatchConfig{Words: []string{"", "123"}}, model.ErrNoWords},
		{"grid too small", model.MatchConfig{Words: []string{"cat"}, GridSize: 9}, model.ErrInvalidGridSize},
		{"grid too large", model.MatchConfig{Words: []string{"cat"}, GridSize: 21}, model.ErrInvalidGridSize},
		{"word too long", model.MatchConfig{Words: []string{"extraordinary"}, GridSize: 10}, model.ErrWordTooLong},
		{"negative time limit", model.MatchConfig{Words: []string{"cat"}, TimeLimit: -1}, model.ErrInvalidTimeLimit},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.controller.CreateMatch(s.ctx, tt.cfg)
			s.ErrorIs(err, tt.err)
		})
	}
}

// JoinMatch tests

func (s *ControllerSuite) TestJoinMatchAddsPlayer() {
	m := s.createSeeded("ABC234")

	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "  ana ")
	s.Require().NoError(err)
	s.Equal("ana", sess.PlayerName())
	s.Equal(model.OutcomePlaying, sess.Outcome())

	stored, err := s.controller.GetMatch(s.ctx, m.Code)
	s.Require().NoError(err)
	s.Equal([]model.PlayerResult{{Name: "ana"}}, stored.Players)
}

func (s *ControllerSuite) TestJoinMatchTwiceReturnsSameSession() {
	m := s.createSeeded("ABC234")

	first, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	second, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)

	s.Same(first, second)
	stored, _ := s.controller.GetMatch(s.ctx, m.Code)
	s.Len(stored.Players, 1)
}

func (s *ControllerSuite) TestJoinMatchRejectsBadName() {
	m := s.createSeeded("ABC234")

	_, err := s.controller.JoinMatch(s.ctx, m.Code, "   ")
	s.ErrorIs(err, model.ErrInvalidPlayerName)

	_, err = s.controller.JoinMatch(s.ctx, m.Code, "a-name-that-is-far-too-long-to-show-anywhere")
	s.ErrorIs(err, model.ErrInvalidPlayerName)
}

func (s *ControllerSuite) TestJoinMissingMatch() {
	_, err := s.controller.JoinMatch(s.ctx, "NOPE00", "ana")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestSeedGivesEveryPlayerTheSameGrid() {
	m := s.createSeeded("ABC234")

	ana, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	bo, err := s.controller.JoinMatch(s.ctx, m.Code, "bo")
	s.Require().NoError(err)

	s.Equal(ana.Snapshot().Rows, bo.Snapshot().Rows)
}

// StartMatch tests

func (s *ControllerSuite) TestStartMatchStartsJoinedSessions() {
	m := s.createSeeded("ABC234")
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	s.ErrorIs(sess.Begin(model.Position{}), model.ErrClockNotStarted)

	started, err := s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)
	s.Require().NotNil(started.StartTime)
	s.True(started.StartTime.Equal(s.clock.Now()))

	s.NoError(sess.Begin(model.Position{}))
}

func (s *ControllerSuite) TestStartMatchTwice() {
	m := s.createSeeded("ABC234")
	_, err := s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.ErrorIs(err, model.ErrMatchAlreadyStarted)
}

func (s *ControllerSuite) TestLateJoinerSharesStartTime() {
	m := s.createSeeded("ABC234")
	_, err := s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	s.clock.Advance(100 * time.Second)
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)

	s.Equal(200, sess.Snapshot().Clock.Remaining)
}

// Result recording

func (s *ControllerSuite) TestWinIsRecordedAfterDelay() {
	m := s.createSeeded("ABC234")
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	s.clock.Advance(50 * time.Second)
	s.solve(sess)
	s.Equal(model.OutcomeWon, sess.Outcome())

	stored, _ := s.controller.GetMatch(s.ctx, m.Code)
	s.False(stored.Players[0].Finished)

	s.clock.Advance(session.DefaultWinDelay)

	stored, _ = s.controller.GetMatch(s.ctx, m.Code)
	s.Equal(model.PlayerResult{Name: "ana", Score: 900, Finished: true, Outcome: model.OutcomeWon}, stored.Players[0])
}

func (s *ControllerSuite) TestLossIsRecorded() {
	m := s.createSeeded("ABC234")
	_, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	s.clock.Advance(300 * time.Second)

	stored, _ := s.controller.GetMatch(s.ctx, m.Code)
	s.Equal(model.PlayerResult{Name: "ana", Score: 0, Finished: true, Outcome: model.OutcomeLost}, stored.Players[0])
}

func (s *ControllerSuite) TestFinishedPlayerIsRestoredAfterRestart() {
	m := s.createSeeded("ABC234")
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)
	s.solve(sess)
	s.clock.Advance(session.DefaultWinDelay)

	// A new controller over the same storage has no live sessions
	s.controller.Close()
	s.controller = NewController(s.storage, s.generator, s.clock, s.random, s.publisher, testutil.NopLogger())

	restored, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	s.Equal(model.OutcomeWon, restored.Outcome())
	s.Equal(1000, restored.Score())
	s.ErrorIs(restored.Begin(model.Position{}), model.ErrSessionFinished)
}

func (s *ControllerSuite) TestRecordResultUnknownPlayer() {
	m := s.createSeeded("ABC234")

	err := s.controller.RecordResult(s.ctx, m.Code, model.PlayerResult{Name: "ghost", Finished: true})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Leaderboard tests

func (s *ControllerSuite) TestLeaderboardWaitsForPlayerToFinish() {
	m := s.createSeeded("ABC234")
	_, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	bo, err := s.controller.JoinMatch(s.ctx, m.Code, "bo")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	// bo reports from elsewhere; the local session must not overwrite it
	bo.Close()

	_, err = s.controller.Leaderboard(s.ctx, m.Code, "ana")
	s.ErrorIs(err, model.ErrSessionNotFinished)

	s.Require().NoError(s.controller.RecordResult(s.ctx, m.Code,
		model.PlayerResult{Name: "bo", Score: 870, Finished: true, Outcome: model.OutcomeWon}))
	s.clock.Advance(300 * time.Second)

	board, err := s.controller.Leaderboard(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	s.Require().Len(board.Top, 2)
	s.Equal("bo", board.Top[0].Name)
	s.Equal(2, board.PlayerRank)
	s.Equal(0, board.PlayerScore)
}

func (s *ControllerSuite) TestLeaderboardWithoutPlayer() {
	m := s.createSeeded("ABC234")
	_, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)

	board, err := s.controller.Leaderboard(s.ctx, m.Code, "")
	s.Require().NoError(err)
	s.Len(board.Top, 1)
	s.Equal(0, board.PlayerRank)

	_, err = s.controller.Leaderboard(s.ctx, m.Code, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// DeleteMatch tests

func (s *ControllerSuite) TestDeleteMatchClosesSessions() {
	m := s.createSeeded("ABC234")
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.DeleteMatch(s.ctx, m.Code))

	_, err = s.controller.GetMatch(s.ctx, m.Code)
	s.ErrorIs(err, model.ErrMatchNotFound)
	_, err = s.controller.Session(m.Code, "ana")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.ErrorIs(sess.Begin(model.Position{}), model.ErrSessionFinished)
	s.Equal(0, s.clock.PendingTimers())

	s.ErrorIs(s.controller.DeleteMatch(s.ctx, m.Code), model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestEventsArePublished() {
	m := s.createSeeded("EVT234")

	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	// Rejoining is not a new player
	_, err = s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)

	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)
	s.solve(sess)
	s.clock.Advance(session.DefaultWinDelay)

	s.Require().NoError(s.controller.DeleteMatch(s.ctx, m.Code))

	s.Equal([]string{
		"EVT234:" + events.EventPlayerJoined,
		"EVT234:" + events.EventMatchStarted,
		"EVT234:" + events.EventWordFound,
		"EVT234:" + events.EventWordFound,
		"EVT234:" + events.EventPlayerWon,
		"EVT234:" + events.EventPlayerFinished,
		"EVT234:" + events.EventMatchDeleted,
	}, s.publisher.names())
	s.Equal([]model.MatchCode{"EVT234"}, s.publisher.removed)
}

func (s *ControllerSuite) TestWinIsAnnouncedBeforeResultIsRecorded() {
	m := s.createSeeded("WIN234")
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Second)
	s.solve(sess)

	s.Equal(events.Event{
		Name: events.EventPlayerWon,
		Data: events.PlayerWon{Player: "ana", Score: 980},
	}, s.publisher.last())

	stored, err := s.controller.GetMatch(s.ctx, m.Code)
	s.Require().NoError(err)
	s.False(stored.GetPlayer("ana").Finished)

	s.clock.Advance(session.DefaultWinDelay)
	s.Equal(events.EventPlayerFinished, s.publisher.last().Name)
}

func (s *ControllerSuite) TestJoinAfterDeadlineRecordsLoss() {
	m := s.createSeeded("LTE234")
	_, err := s.controller.StartMatch(s.ctx, m.Code)
	s.Require().NoError(err)

	s.clock.Advance(400 * time.Second)
	sess, err := s.controller.JoinMatch(s.ctx, m.Code, "bo")
	s.Require().NoError(err)

	s.Equal(model.OutcomeLost, sess.Outcome())
	s.ErrorIs(sess.Begin(model.Position{}), model.ErrSessionFinished)

	s.clock.Advance(0)

	stored, err := s.controller.GetMatch(s.ctx, m.Code)
	s.Require().NoError(err)
	s.Equal(model.PlayerResult{Name: "bo", Score: 0, Finished: true, Outcome: model.OutcomeLost},
		*stored.GetPlayer("bo"))
	s.Equal(events.EventPlayerFinished, s.publisher.last().Name)

	board, err := s.controller.Leaderboard(s.ctx, m.Code, "bo")
	s.Require().NoError(err)
	s.Equal(1, board.PlayerRank)
}

func (s *ControllerSuite) TestSessionLookupTrimsName() {
	m := s.createSeeded("PAD234")
	joined, err := s.controller.JoinMatch(s.ctx, m.Code, "  ana ")
	s.Require().NoError(err)

	sess, err := s.controller.Session(m.Code, " ana ")
	s.Require().NoError(err)
	s.Same(joined, sess)
}

func (s *ControllerSuite) TestNilPublisherIsAllowed() {
	s.controller.Close()
	s.controller = NewController(s.storage, s.generator, s.clock, s.random, nil, testutil.NopLogger())

	m := s.createSeeded("NIL234")
	_, err := s.controller.JoinMatch(s.ctx, m.Code, "ana")
	s.Require().NoError(err)
	_, err = s.controller.StartMatch(s.ctx, m.Code)
	s.NoError(err)
}
