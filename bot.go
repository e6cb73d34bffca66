// Package main - bot.go
//
// This file implements the control loop that turns perception into key
// presses. It orchestrates capture -> localize -> classify -> extract ->
// evaluate -> act, and owns all cross-tick state.
//
// State Machine:
//   SEARCHING: the dino has not been located yet. Every tick captures a
//              frame and runs the template matcher; on a hit the run clock
//              starts, one jump is pressed to start the game, and the loop
//              enters TRACKING. There is no timeout; searching continues
//              until the dino appears or the bot is stopped.
//   TRACKING:  the dino's position is locked. Every tick classifies the
//              scene, extracts the two obstacle bands ahead of the dino and
//              answers detections with jump/duck actions. The loop never
//              re-searches; a stalled run is handled by the idle reset while
//              staying in TRACKING.
//
// Action Policy:
//   - Bottom band obstacle (ground): early game a plain jump; late game a
//     jump pulse, a short pause, then a duck pulse, because late obstacle
//     patterns chain a ground obstacle with a low flyer right behind it.
//   - Middle band obstacle (flyer at head height): hold duck for DuckTime.
//   - Bottom takes priority over middle; ground obstacles are the more
//     common and more urgent case.
//   - No action for IdleResetTime: press jump to restart the run and reset
//     the run clock. The dino's cached position survives the restart.
//
// Concurrency Model:
// The loop is single-threaded and synchronous. Timed key holds block the
// whole tick on purpose: while a key must stay down there is nothing useful
// to observe. The sleep function is a struct field so tests can record
// sleeps instead of waiting them out.
package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"
)

// BotOptions carries the command line surface into the bot.
type BotOptions struct {
	Display    int    // display index to capture
	OpenChrome bool   // launch Chrome on chrome://dino/ at startup
	ChromePath string // custom Chrome executable, empty for default
	Debug      bool   // open the live debug windows
}

// Bot wires the perception pipeline to the key sink and owns the run state.
type Bot struct {
	params  *DinoParams
	data    *PersistentData
	store   *TemplateStore
	locator *Locator
	source  FrameSource
	keys    KeySink
	stats   *Statistics
	debug   *DebugView
	browser *Browser
	tray    *TrayApp
	opts    BotOptions

	// state is the single active tracking state of this run. Only the
	// main loop goroutine touches it.
	state TrackState

	mu     sync.Mutex
	paused bool

	// debugWanted is the tray-togglable debug switch; the loop goroutine
	// opens and closes the actual windows to match it.
	debugWanted atomic.Bool

	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}

	// sleep is time.Sleep in production; tests swap it for a recorder.
	sleep func(time.Duration)
}

// NewBot assembles all components.
//
// Initialization order matters: the template store needs the capture
// resolution before the first localization, so the frame source is created
// first and the templates are rescaled against it here.
func NewBot(opts BotOptions) (*Bot, error) {
	data, err := LoadData()
	if err != nil {
		LogError("Failed to load data: %v, using defaults", err)
		data = NewPersistentData()
	}
	params := data.Params

	store, err := NewTemplateStore()
	if err != nil {
		return nil, err
	}

	source, err := NewScreenSource(opts.Display)
	if err != nil {
		store.Close()
		return nil, err
	}
	width, height := source.Resolution()
	store.ScaleTo(width, height)

	bot := &Bot{
		params:   params,
		data:     data,
		store:    store,
		locator:  NewLocator(params, store),
		source:   source,
		keys:     NewSystemKeys(),
		stats:    NewStatistics(),
		opts:     opts,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		sleep:    time.Sleep,
	}

	bot.debugWanted.Store(opts.Debug)
	if opts.OpenChrome {
		bot.browser = NewBrowser(opts.ChromePath)
	}

	bot.tray = NewTrayApp(bot)
	LogInfo("Bot components initialized")
	return bot, nil
}

// StartMainLoop launches the browser (when requested) and the control loop.
// Called from the tray once its UI is ready.
func (b *Bot) StartMainLoop() {
	if b.browser != nil {
		SafeGo(func() {
			if err := b.browser.Start(); err != nil {
				LogError("Failed to open Chrome: %v", err)
				LogWarn("Open chrome://dino/ manually and focus the tab so key input registers")
				return
			}
			b.verifyGameVisible()
		})
	}

	SafeGo(func() {
		b.mainLoop()
	})
}

// verifyGameVisible runs one localization pass a few seconds after the
// browser came up and warns when the dino is not on screen. Advisory only:
// the main loop keeps searching either way, this just tells the user early
// that the window probably landed on the wrong display or got covered.
func (b *Bot) verifyGameVisible() {
	time.Sleep(3 * time.Second)

	frame, err := b.source.Capture()
	if err != nil {
		LogWarn("Post-launch verification capture failed: %v", err)
		return
	}
	defer frame.Close()

	match := b.locator.Locate(frame)
	if match.Found {
		LogInfo("Post-launch verification: dino visible at (%d,%d)", match.TopLeft.X, match.TopLeft.Y)
		return
	}
	LogWarn("Post-launch verification: dino not visible (best confidence %.3f). "+
		"Check that the game window is on the captured display and not covered", match.Confidence)
}

// mainLoop runs ticks until the stop channel closes.
func (b *Bot) mainLoop() {
	LogInfo("Main loop started")
	defer close(b.doneChan)
	defer func() {
		b.debug.Close()
	}()

	for {
		select {
		case <-b.stopChan:
			LogInfo("Stop signal received")
			return
		default:
		}

		if b.isPaused() {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		b.syncDebugView()
		b.runIteration(time.Now())
	}
}

// runIteration executes one tick of the state machine.
//
// A capture failure aborts only this tick: it is logged as its own error
// kind and the loop backs off briefly before trying again, since the bot is
// meant to run unattended.
func (b *Bot) runIteration(now time.Time) {
	timer := NewTimer("tick")
	defer timer.Log()

	frame, err := b.source.Capture()
	if err != nil {
		var capErr *CaptureError
		if errors.As(err, &capErr) {
			LogError("Frame capture failed: %v", capErr)
		} else {
			LogError("Unexpected capture error: %v", err)
		}
		frame.Close()
		time.Sleep(500 * time.Millisecond)
		return
	}
	defer frame.Close()

	if !b.state.Located {
		b.tickSearching(frame, now)
		return
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorRGBToGray)

	b.tickTracking(frame, gray, now)
}

// tickSearching runs one localization attempt. On success it initializes
// the tracking state and run clock, presses jump to start the game, and the
// next tick enters tracking.
func (b *Bot) tickSearching(frame gocv.Mat, now time.Time) {
	if b.debug != nil {
		b.debug.ShowFrame(frame, &b.state, SceneDay, b.params.InitScaleW)
	}

	match := b.locator.Locate(frame)
	if !match.Found {
		LogDebug("Dino not found (best confidence %.3f)", match.Confidence)
		return
	}

	b.state = TrackState{
		Located:    true,
		TopLeft:    match.TopLeft,
		TemplateW:  match.Width,
		TemplateH:  match.Height,
		StartTime:  now,
		LastAction: now,
	}
	b.keys.Press(KeyJump)
	b.stats.AddJump()
	LogInfo("Dino found at (%d,%d), confidence %.3f, box %dx%d. Let's play!",
		match.TopLeft.X, match.TopLeft.Y, match.Confidence, match.Width, match.Height)
}

// tickTracking runs the perception pipeline on one frame and applies the
// action policy. The scan geometry is always derived from the current state
// and the current elapsed time, never cached.
func (b *Bot) tickTracking(frame, gray gocv.Mat, now time.Time) {
	mode := classifyScene(gray, b.state.TopLeft, b.state.TemplateH, b.params.DayThreshold)
	scaleW := b.params.ScaleWAt(b.state.Elapsed(now))

	if b.debug != nil {
		b.debug.ShowFrame(frame, &b.state, mode, scaleW)
	}

	middleRatio, bottomRatio := obstacleContrasts(gray, &b.state, mode, scaleW, b.debug)
	b.applyActions(middleRatio, bottomRatio, now)
}

// applyActions maps the two band contrasts to key actions and runs the idle
// reset check. This is the whole decision policy; it touches the outside
// world only through the key sink and the sleep func.
func (b *Bot) applyActions(middleRatio, bottomRatio float64, now time.Time) {
	switch {
	case b.params.IsObstacle(bottomRatio):
		if b.state.Elapsed(now).Seconds() >= b.params.LateGameTime {
			// Late game ground obstacles arrive with a low flyer right
			// behind them: jump, then duck the follow-up.
			b.keys.Hold(KeyJump)
			b.keys.Release(KeyJump)
			b.sleep(secondsToDuration(b.params.PostJumpDuckSleep))
			b.keys.Hold(KeyDuck)
			b.keys.Release(KeyDuck)
			b.stats.AddCombo()
			LogDebug("Bottom obstacle (%.2f): jump+duck combo", bottomRatio)
		} else {
			b.keys.Press(KeyJump)
			b.stats.AddJump()
			LogDebug("Bottom obstacle (%.2f): jump", bottomRatio)
		}
		b.state.LastAction = now

	case b.params.IsObstacle(middleRatio):
		b.keys.Hold(KeyDuck)
		b.sleep(secondsToDuration(b.params.DuckTime))
		b.keys.Release(KeyDuck)
		b.stats.AddDuck()
		LogDebug("Middle obstacle (%.2f): duck", middleRatio)
		b.state.LastAction = now
	}

	// A long stretch without any action means the run stalled or ended
	// (crash screens generate no obstacles). Jump restarts the game; the
	// dino's screen position is unchanged across a restart, so the lock
	// stays valid and only the run clock resets.
	if b.state.Idle(now) > secondsToDuration(b.params.IdleResetTime) {
		LogInfo("No action for %.1fs, pressing jump to restart", b.state.Idle(now).Seconds())
		b.keys.Press(KeyJump)
		b.stats.AddIdleReset()
		b.state.StartTime = now
		b.state.LastAction = now
	}
}

// SetPaused pauses or resumes the control loop. Resuming resets the run
// clock so time spent paused neither advances the scan scale nor triggers an
// immediate idle reset.
func (b *Bot) SetPaused(paused bool) {
	b.mu.Lock()
	wasPaused := b.paused
	b.paused = paused
	b.mu.Unlock()

	if wasPaused && !paused && b.state.Located {
		now := time.Now()
		b.state.StartTime = now
		b.state.LastAction = now
	}
	LogInfo("Paused: %v", paused)
}

// SetDebug switches the live debug windows on or off. The windows themselves
// open and close on the loop goroutine, never here: OpenCV window calls are
// not safe across threads.
func (b *Bot) SetDebug(enabled bool) {
	b.debugWanted.Store(enabled)
	LogInfo("Debug windows: %v", enabled)
}

// syncDebugView reconciles the window state with the debug switch. Runs on
// the loop goroutine only.
func (b *Bot) syncDebugView() {
	wanted := b.debugWanted.Load()
	if wanted && b.debug == nil {
		b.debug = NewDebugView()
	}
	if !wanted && b.debug != nil {
		b.debug.Close()
		b.debug = nil
	}
}

func (b *Bot) isPaused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paused
}

// Stop shuts the loop down and releases capture, display and browser
// resources. Safe to call multiple times and from any goroutine.
func (b *Bot) Stop() {
	b.stopOnce.Do(func() {
		LogInfo("Stopping bot")
		close(b.stopChan)

		// Give the loop a moment to finish its tick and close its windows.
		select {
		case <-b.doneChan:
		case <-time.After(2 * time.Second):
			LogWarn("Main loop did not stop in time")
		}

		if b.browser != nil {
			b.browser.Close()
		}
		b.store.Close()
		SaveData(b.data)
	})
}

// secondsToDuration converts a fractional seconds knob into a Duration.
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
