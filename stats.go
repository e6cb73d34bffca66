// Package main - stats.go
//
// This file implements runtime statistics: action counters, actions-per-
// minute rate and uptime. The tray status line reads these concurrently with
// the control loop updating them, hence the mutex.
package main

import (
	"sync"
	"time"
)

// Statistics tracks what the bot has done since startup.
type Statistics struct {
	StartTime  time.Time
	Jumps      int
	Ducks      int
	Combos     int
	IdleResets int
	mu         sync.RWMutex
}

// NewStatistics creates a statistics tracker starting now.
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime: time.Now(),
	}
}

// AddJump records a plain jump action.
func (s *Statistics) AddJump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Jumps++
}

// AddDuck records a duck hold action.
func (s *Statistics) AddDuck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Ducks++
}

// AddCombo records a late game jump+duck combo.
func (s *Statistics) AddCombo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Combos++
}

// AddIdleReset records an idle-reset restart.
func (s *Statistics) AddIdleReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IdleResets++
}

// ActionsPerMinute calculates the overall action rate.
func (s *Statistics) ActionsPerMinute() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elapsed := time.Since(s.StartTime).Minutes()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Jumps+s.Ducks+s.Combos) / elapsed
}

// GetStats returns a consistent snapshot for the tray status line.
func (s *Statistics) GetStats() (jumps, ducks, combos, resets int, apm float64, uptime string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jumps = s.Jumps
	ducks = s.Ducks
	combos = s.Combos
	resets = s.IdleResets

	elapsed := time.Since(s.StartTime)
	if minutes := elapsed.Minutes(); minutes > 0 {
		apm = float64(jumps+ducks+combos) / minutes
	}
	uptime = FormatDuration(elapsed)
	return
}
