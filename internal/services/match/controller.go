package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mcoot/wordsearch-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/events"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/generator"
	"github.com/mcoot/wordsearch-go/internal/services/scoring"
	"github.com/mcoot/wordsearch-go/internal/services/session"
	"github.com/mcoot/wordsearch-go/internal/storage"
)

const (
	// CodeLength is the length of generated match codes
	CodeLength = 6
	// CodeAlphabet is the characters used in match codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// MaxPlayerNameLength bounds player names in runes
	MaxPlayerNameLength = 32

	resultSaveTimeout = 5 * time.Second
)

// Publisher delivers match events to live listeners
type Publisher interface {
	Publish(code model.MatchCode, event events.Event)
	RemoveHub(code model.MatchCode)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.MatchCode, events.Event) {}
func (nopPublisher) RemoveHub(model.MatchCode)             {}

type sessionKey struct {
	code model.MatchCode
	name string
}

// Controller owns matches: their configuration, the authoritative start
// time, the players list, and each joined player's live session
type Controller struct {
	storage   storage.Storage
	generator generator.GeneratorInterface
	clock     clock.Clock
	random    random.Random
	publisher Publisher
	logger    *slog.Logger

	// mu guards sessions and serializes read-modify-write of stored matches
	mu       sync.Mutex
	sessions map[sessionKey]*session.Session
}

// NewController creates a new match Controller. publisher may be nil.
func NewController(
	storage storage.Storage,
	generator generator.GeneratorInterface,
	clock clock.Clock,
	random random.Random,
	publisher Publisher,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Controller{
		storage:   storage,
		generator: generator,
		clock:     clock,
		random:    random,
		publisher: publisher,
		logger:    logger,
		sessions:  make(map[sessionKey]*session.Session),
	}
}

// ValidateConfig normalizes the word list and applies defaults, returning
// the config a match will be played with
func ValidateConfig(cfg model.MatchConfig) (model.MatchConfig, error) {
	words := generator.NormalizeWords(cfg.Words)
	if len(words) == 0 {
		return model.MatchConfig{}, model.ErrNoWords
	}

	gridSize := cfg.GridSize
	if gridSize == 0 {
		gridSize = model.DefaultGridSize
	}
	if gridSize < model.MinGridSize || gridSize > model.MaxGridSize {
		return model.MatchConfig{}, fmt.Errorf("%w: %d is outside [%d, %d]",
			model.ErrInvalidGridSize, gridSize, model.MinGridSize, model.MaxGridSize)
	}

	for _, w := range words {
		if len(w) > gridSize {
			return model.MatchConfig{}, fmt.Errorf("%w: %s", model.ErrWordTooLong, w)
		}
	}

	timeLimit := cfg.TimeLimit
	if timeLimit == 0 {
		timeLimit = model.DefaultTimeLimit
	}
	if timeLimit < 0 {
		return model.MatchConfig{}, fmt.Errorf("%w: %d", model.ErrInvalidTimeLimit, timeLimit)
	}

	return model.MatchConfig{
		Words:     words,
		GridSize:  gridSize,
		TimeLimit: timeLimit,
		Seed:      cfg.Seed,
	}, nil
}

// ValidatePlayerName trims the name and checks it is usable
func ValidatePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return "", model.ErrInvalidPlayerName
	}
	return name, nil
}

// CreateMatch validates the config and stores a new, unstarted match
func (c *Controller) CreateMatch(ctx context.Context, cfg model.MatchConfig) (*model.Match, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()

	// Generate unique match code
	var code model.MatchCode
	for {
		code = model.MatchCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.storage.MatchExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	m := &model.Match{
		Code:      code,
		Config:    cfg,
		Players:   []model.PlayerResult{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_code", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_code", string(code)),
		slog.Int("word_count", len(cfg.Words)),
		slog.Int("grid_size", cfg.GridSize),
		slog.Int("time_limit", cfg.TimeLimit),
	)

	return m, nil
}

// GetMatch retrieves a match by code
func (c *Controller) GetMatch(ctx context.Context, code model.MatchCode) (*model.Match, error) {
	return c.storage.GetMatch(ctx, code)
}

// ListMatches returns the codes of all stored matches
func (c *Controller) ListMatches(ctx context.Context) ([]model.MatchCode, error) {
	return c.storage.ListMatches(ctx)
}

// StartMatch stamps the authoritative start time from the server clock and
// starts the countdown of every live session in the match
func (c *Controller) StartMatch(ctx context.Context, code model.MatchCode) (*model.Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.storage.GetMatch(ctx, code)
	if err != nil {
		return nil, err
	}
	if m.IsStarted() {
		return nil, model.ErrMatchAlreadyStarted
	}

	now := c.clock.Now()
	m.StartTime = &now
	m.UpdatedAt = now

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	for key, sess := range c.sessions {
		if key.code != code {
			continue
		}
		if err := sess.Start(now); err != nil && !errors.Is(err, model.ErrSessionFinished) {
			c.logger.Warn("failed to start session",
				slog.String("match_code", string(code)),
				slog.String("player", key.name),
				slog.String("error", err.Error()),
			)
		}
	}

	c.logger.Info("match started",
		slog.String("match_code", string(code)),
		slog.Int("player_count", len(m.Players)),
	)
	c.publisher.Publish(code, events.Event{
		Name: events.EventMatchStarted,
		Data: events.MatchStarted{StartTime: now, TimeLimit: m.Config.TimeLimit},
	})

	return m, nil
}

// JoinMatch returns the player's live session, creating it (and adding the
// player to the match) if needed. A player who already finished gets a
// restored, terminal session.
func (c *Controller) JoinMatch(ctx context.Context, code model.MatchCode, name string) (*session.Session, error) {
	name, err := ValidatePlayerName(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := sessionKey{code: code, name: name}
	if sess, ok := c.sessions[key]; ok {
		return sess, nil
	}

	m, err := c.storage.GetMatch(ctx, code)
	if err != nil {
		return nil, err
	}

	if m.GetPlayer(name) == nil {
		m.Players = append(m.Players, model.PlayerResult{Name: name})
		m.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveMatch(ctx, m); err != nil {
			return nil, err
		}
		c.publisher.Publish(code, events.Event{
			Name: events.EventPlayerJoined,
			Data: events.PlayerJoined{Player: name},
		})
	}

	rnd := c.random
	if m.Config.Seed != nil {
		rnd = random.NewSeeded(*m.Config.Seed)
	}

	var sess *session.Session
	sess, err = session.New(session.Config{
		Words:      m.Config.Words,
		GridSize:   m.Config.GridSize,
		TimeLimit:  m.Config.TimeLimit,
		StartTime:  m.StartTime,
		PlayerName: name,
		Players:    m.Players,
		OnFinish: func(score int) {
			c.onFinish(code, name, score)
		},
		Celebrate: func() {
			c.publisher.Publish(code, events.Event{
				Name: events.EventPlayerWon,
				Data: events.PlayerWon{Player: name, Score: sess.Score()},
			})
		},
		OnWordFound: func(word string, found, total int) {
			c.publisher.Publish(code, events.Event{
				Name: events.EventWordFound,
				Data: events.WordFound{Player: name, Word: word, Found: found, Total: total},
			})
		},
	}, c.generator, rnd, c.clock, c.logger.With(slog.String("match_code", string(code))))
	if err != nil {
		return nil, err
	}

	c.sessions[key] = sess

	c.logger.Info("player joined",
		slog.String("match_code", string(code)),
		slog.String("player", name),
		slog.String("outcome", string(sess.Outcome())),
	)

	return sess, nil
}

// Session returns a joined player's live session. The name is trimmed the
// same way JoinMatch trims it.
func (c *Controller) Session(code model.MatchCode, name string) (*session.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[sessionKey{code: code, name: strings.TrimSpace(name)}]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return sess, nil
}

// onFinish persists a session's final score with its outcome
func (c *Controller) onFinish(code model.MatchCode, name string, score int) {
	ctx, cancel := context.WithTimeout(context.Background(), resultSaveTimeout)
	defer cancel()

	outcome := model.OutcomeLost
	if sess, err := c.Session(code, name); err == nil {
		outcome = sess.Outcome()
	}

	result := model.PlayerResult{Name: name, Score: score, Finished: true, Outcome: outcome}
	if err := c.RecordResult(ctx, code, result); err != nil {
		c.logger.Error("failed to record result",
			slog.String("match_code", string(code)),
			slog.String("player", name),
			slog.String("error", err.Error()),
		)
		return
	}

	c.publisher.Publish(code, events.Event{
		Name: events.EventPlayerFinished,
		Data: events.PlayerFinished{Player: name, Outcome: outcome, Score: score},
	})
}

// RecordResult writes a player's result into the match's players list
func (c *Controller) RecordResult(ctx context.Context, code model.MatchCode, result model.PlayerResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordResultLocked(ctx, code, result)
}

func (c *Controller) recordResultLocked(ctx context.Context, code model.MatchCode, result model.PlayerResult) error {
	m, err := c.storage.GetMatch(ctx, code)
	if err != nil {
		return err
	}

	p := m.GetPlayer(result.Name)
	if p == nil {
		return model.ErrPlayerNotFound
	}
	*p = result
	m.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return err
	}

	c.logger.Info("result recorded",
		slog.String("match_code", string(code)),
		slog.String("player", result.Name),
		slog.Int("score", result.Score),
		slog.String("outcome", string(result.Outcome)),
	)
	return nil
}

// Leaderboard ranks the match's players. With a player name it is only
// available once that player's round is over.
func (c *Controller) Leaderboard(ctx context.Context, code model.MatchCode, name string) (model.Leaderboard, error) {
	name = strings.TrimSpace(name)
	m, err := c.storage.GetMatch(ctx, code)
	if err != nil {
		return model.Leaderboard{}, err
	}

	if name == "" {
		return scoring.BuildLeaderboard(m.Players, "", scoring.LeaderboardSize), nil
	}

	if sess, err := c.Session(code, name); err == nil {
		return sess.Leaderboard(m.Players)
	}

	p := m.GetPlayer(name)
	if p == nil {
		return model.Leaderboard{}, model.ErrPlayerNotFound
	}
	if !p.Finished {
		return model.Leaderboard{}, model.ErrSessionNotFinished
	}
	return scoring.BuildLeaderboard(m.Players, name, scoring.LeaderboardSize), nil
}

// DeleteMatch closes the match's live sessions and removes it
func (c *Controller) DeleteMatch(ctx context.Context, code model.MatchCode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exists, err := c.storage.MatchExists(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrMatchNotFound
	}

	for key, sess := range c.sessions {
		if key.code == code {
			sess.Close()
			delete(c.sessions, key)
		}
	}

	if err := c.storage.DeleteMatch(ctx, code); err != nil {
		return err
	}

	c.publisher.Publish(code, events.Event{
		Name: events.EventMatchDeleted,
		Data: events.MatchDeleted{Code: code},
	})
	c.publisher.RemoveHub(code)

	c.logger.Info("match deleted", slog.String("match_code", string(code)))
	return nil
}

// Close cancels every live session
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, sess := range c.sessions {
		sess.Close()
		delete(c.sessions, key)
	}
}

// ControllerInterface defines the match operations used by the API
type ControllerInterface interface {
	CreateMatch(ctx context.Context, cfg model.MatchConfig) (*model.Match, error)
	GetMatch(ctx context.Context, code model.MatchCode) (*model.Match, error)
	ListMatches(ctx context.Context) ([]model.MatchCode, error)
	StartMatch(ctx context.Context, code model.MatchCode) (*model.Match, error)
	JoinMatch(ctx context.Context, code model.MatchCode, name string) (*session.Session, error)
	Session(code model.MatchCode, name string) (*session.Session, error)
	Leaderboard(ctx context.Context, code model.MatchCode, name string) (model.Leaderboard, error)
	DeleteMatch(ctx context.Context, code model.MatchCode) error
	Close()
}

// Ensure Controller implements ControllerInterface
var _ ControllerInterface = (*Controller)(nil)
