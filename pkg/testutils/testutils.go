// Package testutils holds helpers shared by package tests.
package testutils

import (
	"io"
	"log"
	"log/slog"
	"sync"
	"time"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SilenceLogs routes both the slog default and the std log package to
// io.Discard. Call it from TestMain.
func SilenceLogs() {
	slog.SetDefault(DiscardLogger())
	log.SetOutput(io.Discard)
}

// Clock is a deterministic time source that advances by a fixed step on
// every call to Now.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock returns a Clock whose first reading is start+step.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now advances the clock and returns the new reading.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}
