// Package main - data.go
//
// This file defines the core data structures used throughout the bot application.
// It provides the configuration bundle, localization results, and the mutable
// tracking state owned by the control loop.
//
// Major Data Categories:
//
// 1. Configuration:
//    - DinoParams: All tunable knobs (thresholds, timings, scan scale bounds)
//    - PersistentData: Container for params (saved to data.json)
//
// 2. Perception Results:
//    - Match: Template matching outcome (confidence, position, size)
//    - SceneMode: Day/Night enumeration for template and threshold selection
//
// 3. Run State:
//    - TrackState: Cached dino position plus the run clock
//      (start time, last action time), owned exclusively by the control loop
//
// Thread Safety:
// DinoParams is immutable after construction and safe to share. TrackState is
// only ever touched by the control loop goroutine and needs no locking.
package main

import (
	"image"
	"time"
)

// Reference resolution the bundled templates were captured at. Templates are
// rescaled from this to the active capture resolution once at startup.
const (
	templateRefWidth  = 1920
	templateRefHeight = 1080
)

// SceneMode identifies the game's rendering mode. The dino game flips between
// a white daytime sky and a dark nighttime sky as the run progresses, and
// both the character template and the obstacle threshold depend on it.
type SceneMode int

const (
	SceneDay SceneMode = iota
	SceneNight
)

// String returns a human-readable mode name for logs and the debug overlay.
func (m SceneMode) String() string {
	if m == SceneDay {
		return "day"
	}
	return "night"
}

// DinoParams holds all configuration parameters for the dino bot.
//
// All values have working defaults (see NewDinoParams) and may be overridden
// via data.json before the bot is constructed. The struct is treated as
// immutable for the lifetime of a run.
type DinoParams struct {
	// ConfidenceThreshold is the minimum normalized template matching score
	// for the dino to count as found.
	ConfidenceThreshold float64

	// DayThreshold is the minimum ratio of fully white pixels in the sky
	// strip above the dino for the scene to classify as daytime.
	DayThreshold float64

	// ObstacleMinContrast / ObstacleMaxContrast bound the white-pixel ratio
	// of a binarized scan band for it to count as an obstacle. Both bounds
	// are strict: a uniformly dark (0.0) or uniformly bright (1.0) band is
	// never an obstacle.
	ObstacleMinContrast float64
	ObstacleMaxContrast float64

	// LateGameTime is the number of seconds after which the run is
	// considered late game: scan distance is maxed out and ground obstacles
	// are answered with a jump+duck combo.
	LateGameTime float64

	// IdleResetTime is the number of seconds without any emitted action
	// before the bot presses jump to restart a stalled or ended run.
	IdleResetTime float64

	// DuckTime is how long the duck key is held for flying obstacles,
	// in seconds.
	DuckTime float64

	// PostJumpDuckSleep is the short pause between the jump and the duck of
	// the late game combo, in seconds.
	PostJumpDuckSleep float64

	// InitScaleW and LateScaleW bound the forward scan distance, expressed
	// as multiples of the template width. The effective scale ramps
	// linearly from InitScaleW at run start to LateScaleW at LateGameTime.
	InitScaleW float64
	LateScaleW float64
}

// NewDinoParams creates the default parameter set.
func NewDinoParams() *DinoParams {
	return &DinoParams{
		ConfidenceThreshold: 0.8,
		DayThreshold:        0.5,
		ObstacleMinContrast: 0.1,
		ObstacleMaxContrast: 0.9,
		LateGameTime:        30.0,
		IdleResetTime:       7.0,
		DuckTime:            0.4,
		PostJumpDuckSleep:   0.02,
		InitScaleW:          1.5,
		LateScaleW:          4.0,
	}
}

// ScaleWAt computes the forward scan scale for the given elapsed run time.
//
// The scale ramps linearly from InitScaleW at elapsed=0 to LateScaleW at
// elapsed=LateGameTime and stays clamped at LateScaleW afterwards. Obstacles
// approach faster as the game speeds up, so the scan window has to move
// farther ahead of the dino to catch them while they are still avoidable.
func (p *DinoParams) ScaleWAt(elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds >= p.LateGameTime {
		return p.LateScaleW
	}
	if seconds <= 0 {
		return p.InitScaleW
	}
	ratio := seconds / p.LateGameTime
	return p.InitScaleW + ratio*(p.LateScaleW-p.InitScaleW)
}

// IsObstacle reports whether a band contrast ratio indicates an obstacle.
// Both comparisons are strict: 0.0 means nothing in the band, 1.0 means the
// band is fully occluded or overexposed, and neither is actionable.
func (p *DinoParams) IsObstacle(ratio float64) bool {
	return p.ObstacleMinContrast < ratio && ratio < p.ObstacleMaxContrast
}

// Match is the result of one localization attempt.
type Match struct {
	Found      bool
	Confidence float64
	TopLeft    image.Point
	Width      int
	Height     int
}

// Box returns the match as an image.Rectangle.
func (m Match) Box() image.Rectangle {
	return image.Rect(m.TopLeft.X, m.TopLeft.Y, m.TopLeft.X+m.Width, m.TopLeft.Y+m.Height)
}

// TrackState is the control loop's cross-tick state: the dino's cached
// position and size once located, plus the run clock.
//
// The dino never moves on screen in this game (the world scrolls past it),
// so the cached position stays valid for the whole run. This is a documented
// precondition of the tracking state, not a general invariant; revisiting it
// (e.g. periodic re-localization) only needs changes here and in the
// searching tick.
type TrackState struct {
	// Located is true once the initial template match succeeded. No
	// obstacle evaluation happens before that.
	Located bool

	// TopLeft, TemplateW and TemplateH describe the dino's bounding box in
	// frame coordinates, copied from the winning Match.
	TopLeft   image.Point
	TemplateW int
	TemplateH int

	// StartTime is when the current run began; it drives the scan scale
	// ramp and the late game policy. Reset by the idle reset.
	StartTime time.Time

	// LastAction is when the bot last pressed a key. Any emitted action
	// refreshes it; going IdleResetTime without one triggers the restart.
	LastAction time.Time
}

// Elapsed returns the run time at the given instant.
func (s *TrackState) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}

// Idle returns how long the bot has gone without pressing a key.
func (s *TrackState) Idle(now time.Time) time.Duration {
	return now.Sub(s.LastAction)
}

// PersistentData holds everything saved to data.json.
type PersistentData struct {
	Params *DinoParams `json:"params"`
}

// NewPersistentData creates a persistent data container with default params.
func NewPersistentData() *PersistentData {
	return &PersistentData{
		Params: NewDinoParams(),
	}
}
