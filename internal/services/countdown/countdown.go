// Package countdown derives remaining and elapsed time from an authoritative
// start time. Remaining time is always recomputed from absolute time rather
// than decremented locally, so a late or suspended tick never drifts the
// deadline by more than one tick interval.
package countdown

import (
	"fmt"
	"time"

	"github.com/mcoot/wordsearch-go/internal/model"
)

// DefaultTickInterval is how often the countdown is reconciled
const DefaultTickInterval = time.Second

// Countdown holds the timing state of one round
type Countdown struct {
	StartTime *time.Time
	TimeLimit int // seconds
}

// New creates a Countdown. A nil start means the clock is not running.
func New(start *time.Time, timeLimit int) *Countdown {
	c := &Countdown{TimeLimit: timeLimit}
	if start != nil {
		t := *start
		c.StartTime = &t
	}
	return c
}

// Running returns true once a start time is known
func (c *Countdown) Running() bool {
	return c.StartTime != nil
}

// Start sets the start time if none is set yet
func (c *Countdown) Start(start time.Time) error {
	if c.StartTime != nil {
		return model.ErrClockAlreadyStarted
	}
	c.StartTime = &start
	return nil
}

// ElapsedSeconds returns whole seconds since the start, never negative
func (c *Countdown) ElapsedSeconds(now time.Time) int {
	if c.StartTime == nil {
		return 0
	}
	d := now.Sub(*c.StartTime)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Elapsed returns fractional seconds since the start, never negative
func (c *Countdown) Elapsed(now time.Time) float64 {
	if c.StartTime == nil {
		return 0
	}
	d := now.Sub(*c.StartTime)
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// Remaining returns max(0, limit - floor(elapsed)). Without a start time
// the full limit remains.
func (c *Countdown) Remaining(now time.Time) int {
	remaining := c.TimeLimit - c.ElapsedSeconds(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired returns true once a running countdown has reached zero
func (c *Countdown) Expired(now time.Time) bool {
	return c.Running() && c.Remaining(now) == 0
}

// State returns the countdown as a ClockState at now
func (c *Countdown) State(now time.Time) model.ClockState {
	state := model.ClockState{
		TimeLimit: c.TimeLimit,
		Remaining: c.Remaining(now),
	}
	if c.StartTime != nil {
		t := *c.StartTime
		state.StartTime = &t
	}
	return state
}

// Format renders seconds as m:ss
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
