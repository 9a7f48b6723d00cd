package model

import "time"

// MatchCode is a short human-readable identifier for a match
type MatchCode string

// Defaults and bounds applied by the match collaborator
const (
	DefaultGridSize  = 15
	MinGridSize      = 10
	MaxGridSize      = 20
	DefaultTimeLimit = 300 // seconds
)

// MatchConfig is the word-search definition a match is played with
type MatchConfig struct {
	Words     []string
	GridSize  int
	TimeLimit int    // seconds
	Seed      *int64 // when set, every player gets the same grid
}

// Match is one round of the puzzle shared by several players
type Match struct {
	Code      MatchCode
	Config    MatchConfig
	StartTime *time.Time // authoritative start, nil until started
	Players   []PlayerResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the player with the given name, or nil if not found
func (m *Match) GetPlayer(name string) *PlayerResult {
	for i := range m.Players {
		if m.Players[i].Name == name {
			return &m.Players[i]
		}
	}
	return nil
}

// IsStarted returns true once the authoritative start time is set
func (m *Match) IsStarted() bool {
	return m.StartTime != nil
}

// Clone returns a deep copy of the match
func (m *Match) Clone() *Match {
	c := *m
	c.Config.Words = append([]string(nil), m.Config.Words...)
	if m.Config.Seed != nil {
		seed := *m.Config.Seed
		c.Config.Seed = &seed
	}
	if m.StartTime != nil {
		t := *m.StartTime
		c.StartTime = &t
	}
	c.Players = append([]PlayerResult(nil), m.Players...)
	return &c
}
