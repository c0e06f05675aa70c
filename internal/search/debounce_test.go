package search

import (
	"testing"
	"time"
)

func TestGate(t *testing.T) {
	t.Run("NewGate", func(t *testing.T) {
		t.Run("defaults the quiet interval", func(t *testing.T) {
			if g := NewGate(0); g.Interval() != DefaultQuietInterval {
				t.Errorf("expected %v, got %v", DefaultQuietInterval, g.Interval())
			}
		})

		t.Run("keeps a custom interval", func(t *testing.T) {
			if g := NewGate(50 * time.Millisecond); g.Interval() != 50*time.Millisecond {
				t.Errorf("expected 50ms, got %v", g.Interval())
			}
		})
	})

	t.Run("single value fires after quiet period", func(t *testing.T) {
		g := NewGate(0)

		token, emitNow := g.Arm("batman")
		if emitNow {
			t.Fatal("non-empty input must wait for the quiet period")
		}

		value, ok := g.Fire(token)
		if !ok {
			t.Fatal("expected the armed timer to fire")
		}
		if value != "batman" {
			t.Errorf("expected batman, got %q", value)
		}
	})

	t.Run("burst emits only the final value", func(t *testing.T) {
		g := NewGate(0)

		t1, _ := g.Arm("bat")
		t2, _ := g.Arm("batm")
		t3, _ := g.Arm("batman")

		if _, ok := g.Fire(t1); ok {
			t.Error("superseded timer fired")
		}
		if _, ok := g.Fire(t2); ok {
			t.Error("superseded timer fired")
		}

		value, ok := g.Fire(t3)
		if !ok {
			t.Fatal("latest timer did not fire")
		}
		if value != "batman" {
			t.Errorf("expected batman, got %q", value)
		}
	})

	t.Run("empty input emits immediately", func(t *testing.T) {
		g := NewGate(0)

		g.Arm("batman")
		token, emitNow := g.Arm("   ")
		if !emitNow {
			t.Fatal("clearing the input must emit without waiting")
		}

		// The earlier timer was invalidated by the clear.
		if _, ok := g.Fire(token); ok {
			t.Error("no timer should be pending after an immediate emit")
		}
	})

	t.Run("cancel suppresses pending emission", func(t *testing.T) {
		g := NewGate(0)

		token, _ := g.Arm("batman")
		g.Cancel()

		if _, ok := g.Fire(token); ok {
			t.Error("emission occurred after cancellation")
		}
	})

	t.Run("firing twice is a no-op", func(t *testing.T) {
		g := NewGate(0)

		token, _ := g.Arm("batman")
		if _, ok := g.Fire(token); !ok {
			t.Fatal("expected first fire to succeed")
		}
		if _, ok := g.Fire(token); ok {
			t.Error("second fire for the same token must be rejected")
		}
	})
}
