// Package main - input.go
//
// This file implements the key sink, the bot's only output channel.
//
// The dino game needs exactly two keys: space to jump (and to restart after
// a game over) and arrow-down to duck. Input delivery is fire-and-forget: if
// the OS drops a key event the bot has no way to observe it, so failures are
// logged and otherwise ignored.
package main

import (
	"github.com/go-vgo/robotgo"
)

// Game keys. Key names follow robotgo's keyboard map.
const (
	KeyJump = "space"
	KeyDuck = "down"
)

// KeySink dispatches key events to the game.
//
// Press is an instantaneous down+up. Hold and Release bracket a timed hold;
// the control loop owns the timing in between.
type KeySink interface {
	Press(key string)
	Hold(key string)
	Release(key string)
}

// SystemKeys sends real OS-level key events via robotgo.
type SystemKeys struct{}

// NewSystemKeys creates the real key sink.
func NewSystemKeys() *SystemKeys {
	// Key events go to whatever window has focus; keep robotgo's built-in
	// post-event delay at zero so hold durations are ours alone.
	robotgo.KeySleep = 0
	return &SystemKeys{}
}

// Press taps a key.
func (k *SystemKeys) Press(key string) {
	if err := robotgo.KeyTap(key); err != nil {
		LogWarn("Key tap %q failed: %v", key, err)
	}
}

// Hold pushes a key down without releasing it.
func (k *SystemKeys) Hold(key string) {
	if err := robotgo.KeyDown(key); err != nil {
		LogWarn("Key down %q failed: %v", key, err)
	}
}

// Release lets a held key go.
func (k *SystemKeys) Release(key string) {
	if err := robotgo.KeyUp(key); err != nil {
		LogWarn("Key up %q failed: %v", key, err)
	}
}
