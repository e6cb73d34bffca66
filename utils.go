// Package main - utils.go
//
// Small shared helpers: panic-safe goroutine launcher, duration formatting
// for the tray status line, and a timer for logging iteration cost.
package main

import (
	"fmt"
	"time"
)

// SafeGo runs fn in a goroutine with panic recovery, so a crash in a
// background worker is logged instead of killing the process.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				LogError("PANIC in goroutine: %v", r)
			}
		}()
		fn()
	}()
}

// FormatDuration renders a duration as H:MM:SS.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Timer measures a named operation; create with NewTimer, finish with Log.
type Timer struct {
	name  string
	start time.Time
}

// NewTimer starts a timer.
func NewTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Log writes the elapsed time at debug level.
func (t *Timer) Log() {
	LogDebug("%s took %v", t.name, time.Since(t.start))
}
