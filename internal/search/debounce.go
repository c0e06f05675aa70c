// package search implements the incremental search flow: a debounce gate
// that coalesces keystrokes into query signals, and a session that applies
// catalog responses in request order.
//
// Neither type owns a timer or a goroutine. The caller schedules timers
// (the TUI uses [tea.Tick]) and hands back the token it was armed with;
// validity is decided by token comparison, which keeps every behavior
// deterministic under test.
package search

import (
	"strings"
	"time"
)

// DefaultQuietInterval is how long input must stay unchanged before the
// gate emits.
const DefaultQuietInterval = 300 * time.Millisecond

// Gate coalesces a stream of raw query strings. Only the most recent value
// in a burst is ever emitted; earlier values are dropped, never queued.
type Gate struct {
	interval time.Duration
	seq      int
	pending  string
	armed    bool
}

// NewGate creates a gate with the given quiet interval, defaulting to
// [DefaultQuietInterval] when interval is zero or negative.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = DefaultQuietInterval
	}
	return &Gate{interval: interval}
}

// Interval returns the quiet interval a scheduled timer should wait for.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Arm records a new raw input value and invalidates any pending timer.
//
// When the trimmed value is empty the gate emits immediately: emitNow is
// true and no timer should be scheduled (clearing the input clears results
// without waiting for the quiet period). Otherwise the caller schedules a
// timer for [Gate.Interval] carrying the returned token.
func (g *Gate) Arm(raw string) (token int, emitNow bool) {
	g.seq++

	if strings.TrimSpace(raw) == "" {
		g.armed = false
		g.pending = ""
		return g.seq, true
	}

	g.armed = true
	g.pending = raw
	return g.seq, false
}

// Fire resolves a timer expiry. It returns the value to emit and true only
// when the token belongs to the most recent Arm and no Cancel intervened.
func (g *Gate) Fire(token int) (string, bool) {
	if !g.armed || token != g.seq {
		return "", false
	}
	g.armed = false
	return g.pending, true
}

// Cancel drops any pending emission. Used when the owning view unmounts;
// no emission ever occurs after cancellation.
func (g *Gate) Cancel() {
	g.seq++
	g.armed = false
	g.pending = ""
}
