package activity

import (
	"testing"
	"time"
)

func TestThrottleSpacesSignals(t *testing.T) {
	th := New(200 * time.Millisecond)
	base := time.Now()

	if !th.Allow(base, false) {
		t.Fatalf("expected first signal forwarded")
	}
	if th.Allow(base.Add(50*time.Millisecond), false) {
		t.Fatalf("expected signal inside the window suppressed")
	}
	if th.Allow(base.Add(199*time.Millisecond), false) {
		t.Fatalf("expected signal just inside the window suppressed")
	}
	if !th.Allow(base.Add(200*time.Millisecond), false) {
		t.Fatalf("expected signal at the window boundary forwarded")
	}
}

func TestThrottleBypassesWhileDimmed(t *testing.T) {
	th := New(200 * time.Millisecond)
	base := time.Now()

	if !th.Allow(base, false) {
		t.Fatalf("expected first signal forwarded")
	}
	if !th.Allow(base.Add(10*time.Millisecond), true) {
		t.Fatalf("expected dimmed signal forwarded immediately")
	}
	if !th.Allow(base.Add(20*time.Millisecond), true) {
		t.Fatalf("expected every dimmed signal forwarded")
	}
	// Undimmed again: the spacing window re-armed by the last forward applies.
	if th.Allow(base.Add(30*time.Millisecond), false) {
		t.Fatalf("expected undimmed signal inside the window suppressed")
	}
}

func TestThrottleDefaultInterval(t *testing.T) {
	th := New(0)
	if th.interval != DefaultInterval {
		t.Fatalf("expected default interval %v, got %v", DefaultInterval, th.interval)
	}
}
