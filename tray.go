// Package main - tray.go
//
// This file implements the system tray UI.
// Uses getlantern/systray library for cross-platform tray menu support.
//
// Menu Structure:
//   Dino Bot
//   ├─ Status: Jumps | Ducks | APM | Uptime (read-only, refreshed every second)
//   ├─ Pause / Resume (checkbox)
//   └─ Quit (graceful shutdown)
//
// The dino game has no configuration worth a menu tree; detection parameters
// live in data.json and are edited by hand. The tray exists so the bot can
// run headless-ish in the background and still be pausable and killable
// without hunting for the process.
//
// Lifecycle:
//   1. NewTrayApp: Create instance with bot reference
//   2. Run: Start systray (blocking call)
//   3. onReady: Initialize menu, start the bot's main loop
//   4. handleEvents: Listen for user interactions (infinite loop)
//   5. onExit: Stop the bot and flush state
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getlantern/systray"
)

// TrayApp manages the system tray application and user interface.
type TrayApp struct {
	bot *Bot

	statusItem *systray.MenuItem
	pauseItem  *systray.MenuItem
	debugItem  *systray.MenuItem
}

// NewTrayApp creates a new tray application
func NewTrayApp(bot *Bot) *TrayApp {
	return &TrayApp{
		bot: bot,
	}
}

// Run starts the tray application
func (t *TrayApp) Run() {
	LogInfo("Starting system tray application")
	systray.Run(t.onReady, func() {
		LogInfo("System tray onExit callback triggered")
		if t.bot != nil {
			t.bot.Stop()
		}
		LogInfo("System tray exit complete")
	})
	LogInfo("System tray Run() returned")
}

// onReady is called when the tray is ready
func (t *TrayApp) onReady() {
	systray.SetTitle("Dino Bot")
	systray.SetTooltip("Chrome Dino Bot")

	// Status (read-only)
	t.statusItem = systray.AddMenuItem("Status: Searching for dino...", "Current bot status")
	t.statusItem.Disable()

	systray.AddSeparator()

	t.pauseItem = systray.AddMenuItemCheckbox("Pause", "Pause the control loop", false)
	t.debugItem = systray.AddMenuItemCheckbox("Debug Windows", "Show the live debug windows", t.bot.opts.Debug)

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit the application")

	// Start event loop
	go t.handleEvents(quitItem)
	go t.statusLoop()

	LogInfo("System tray initialized")

	// Start browser and main loop in background after tray is ready
	go func() {
		LogInfo("Starting main loop from tray...")
		t.bot.StartMainLoop()
	}()
}

// handleEvents handles tray menu events
func (t *TrayApp) handleEvents(quitItem *systray.MenuItem) {
	for {
		select {
		case <-t.pauseItem.ClickedCh:
			if t.pauseItem.Checked() {
				t.pauseItem.Uncheck()
				t.bot.SetPaused(false)
			} else {
				t.pauseItem.Check()
				t.bot.SetPaused(true)
			}
		case <-t.debugItem.ClickedCh:
			if t.debugItem.Checked() {
				t.debugItem.Uncheck()
				t.bot.SetDebug(false)
			} else {
				t.debugItem.Check()
				t.bot.SetDebug(true)
			}
		case <-quitItem.ClickedCh:
			LogInfo("Quit requested by user")
			t.bot.Stop()
			LogInfo("Closing logger...")
			CloseLogger()
			LogInfo("Quitting system tray...")
			systray.Quit()
			LogInfo("Forcing exit...")
			os.Exit(0)
		}
	}
}

// statusLoop refreshes the status line once a second.
func (t *TrayApp) statusLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		t.UpdateStatus()
	}
}

// UpdateStatus renders the current statistics into the status line.
func (t *TrayApp) UpdateStatus() {
	if t.statusItem == nil {
		return
	}

	if t.bot.isPaused() {
		t.statusItem.SetTitle("Status: Paused")
		return
	}
	if !t.bot.state.Located {
		t.statusItem.SetTitle("Status: Searching for dino...")
		return
	}

	jumps, ducks, combos, resets, apm, uptime := t.bot.stats.GetStats()
	t.statusItem.SetTitle(fmt.Sprintf("Status: %d jumps | %d ducks | %d combos | %d resets | %.1f/min | %s",
		jumps, ducks, combos, resets, apm, uptime))
}
