package main

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{59 * time.Second, "0:00:59"},
		{61 * time.Second, "0:01:01"},
		{3*time.Hour + 7*time.Minute + 9*time.Second, "3:07:09"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestSafeGoRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGo(func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
		// Panic was swallowed; the test process is still alive.
	case <-time.After(time.Second):
		t.Fatal("goroutine never ran")
	}
}

func TestStatisticsCounters(t *testing.T) {
	s := NewStatistics()
	s.AddJump()
	s.AddJump()
	s.AddDuck()
	s.AddCombo()
	s.AddIdleReset()

	jumps, ducks, combos, resets, _, uptime := s.GetStats()
	if jumps != 2 || ducks != 1 || combos != 1 || resets != 1 {
		t.Errorf("counters = %d/%d/%d/%d, want 2/1/1/1", jumps, ducks, combos, resets)
	}
	if uptime == "" {
		t.Error("uptime should render")
	}
}
