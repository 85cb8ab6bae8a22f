// Package blindtimer tracks the wall-clock interval between blind increases.
//
// The timer never calls back into the game. The match polls Remaining at the
// start of each hand, which keeps blind changes between hands.
package blindtimer

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Timer counts down one blind level
type Timer struct {
	clock    quartz.Clock
	interval time.Duration
	deadline time.Time
	running  bool
	logger   *log.Logger
}

// New creates a stopped timer. A nil clock uses the real clock.
func New(clock quartz.Clock, interval time.Duration, logger *log.Logger) *Timer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Timer{
		clock:    clock,
		interval: interval,
		logger:   logger.WithPrefix("timer"),
	}
}

// Interval returns the length of a full blind level
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Start begins a full interval
func (t *Timer) Start() {
	t.StartWith(t.interval)
}

// StartWith begins counting down from remaining, used when resuming a match
func (t *Timer) StartWith(remaining time.Duration) {
	t.deadline = t.clock.Now().Add(remaining)
	t.running = true
	t.logger.Debug("Timer started", "remaining", remaining)
}

// Stop halts the timer; Remaining reports zero afterwards
func (t *Timer) Stop() {
	t.running = false
}

// Running reports whether the timer was started and not stopped. An expired
// timer is still running until restarted or stopped.
func (t *Timer) Running() bool {
	return t.running
}

// Remaining returns the time left in the level, zero when stopped or expired
func (t *Timer) Remaining() time.Duration {
	if !t.running {
		return 0
	}
	left := t.deadline.Sub(t.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the current level has run out
func (t *Timer) Expired() bool {
	return t.running && t.Remaining() == 0
}
