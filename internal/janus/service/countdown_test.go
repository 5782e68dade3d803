package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdown_FiresOnceAtDeadline(t *testing.T) {
	var fired atomic.Int32
	c := newCountdown(time.Now().Add(60*time.Millisecond), 10*time.Millisecond, func() {
		fired.Add(1)
	})
	defer c.Stop()

	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected onExpire to fire exactly once, got %d", got)
	}
}

func TestCountdown_StopPreventsExpiry(t *testing.T) {
	var fired atomic.Int32
	c := newCountdown(time.Now().Add(80*time.Millisecond), 10*time.Millisecond, func() {
		fired.Add(1)
	})
	c.Stop()

	time.Sleep(200 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("expected no expiry after Stop, got %d", got)
	}
}

func TestCountdown_StopIsIdempotent(t *testing.T) {
	c := newCountdown(time.Now().Add(time.Hour), time.Second, func() {})
	c.Stop()
	c.Stop()
	c.Stop()
}

func TestCountdown_RemainingRoundsUpAndClamps(t *testing.T) {
	c := newCountdown(time.Now().Add(2500*time.Millisecond), time.Hour, func() {})
	defer c.Stop()

	if rem := c.Remaining(); rem != 3 {
		t.Errorf("expected 3 remaining seconds, got %d", rem)
	}

	past := newCountdown(time.Now().Add(-time.Second), time.Hour, func() {})
	defer past.Stop()

	if rem := past.Remaining(); rem != 0 {
		t.Errorf("expected 0 for an elapsed deadline, got %d", rem)
	}
}
