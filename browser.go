// Package main - browser.go
//
// This file implements the Browser controller that manages chromedp for
// opening the game. The bot itself never talks to the page: frames come from
// the OS screen grab and key events go through the OS input layer, so the
// browser is only a convenience launcher that puts chrome://dino/ on screen
// with the right window state.
//
// Key Responsibilities:
//   - Chromedp browser lifecycle management (start, navigate, close)
//   - Navigation to chrome://dino/ with timeout protection
//   - Quick page validation (is the runner actually there)
//
// Browser Architecture:
// The Browser uses nested contexts for proper resource management:
//   - allocCtx: Allocator context for browser process management
//   - ctx: Browser context for page operations
// Both contexts have cancel functions for graceful cleanup.
//
// Timeout Strategy:
//   - Navigation: 30 seconds (chrome://dino/ is local, but first launch can
//     be slow while the profile is created)
//   - Runner check: 2 seconds (quick validation)
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// gameURL is Chrome's built-in offline dino page. It works online too.
const gameURL = "chrome://dino/"

// Browser manages the chromedp browser instance showing the game.
//
// Lifecycle:
//  1. NewBrowser(): Create instance, optionally with a custom Chrome path
//  2. Start(): Initialize chromedp contexts and navigate to the game
//  3. CheckGameLoaded(): Verify the runner page is up
//  4. Close(): Clean up contexts and browser process
//
// Error Handling:
// All chromedp operations use context timeouts to prevent indefinite
// blocking. Errors are logged but do not crash the application; the user can
// always open the page by hand.
type Browser struct {
	execPath    string
	ctx         context.Context
	cancel      context.CancelFunc
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewBrowser creates a new browser launcher. execPath overrides the Chrome
// binary chromedp finds on its own; empty means auto-detect.
func NewBrowser(execPath string) *Browser {
	return &Browser{
		execPath: execPath,
	}
}

// Start launches Chrome and navigates to chrome://dino/.
//
// The window is started maximized and in the foreground so it both fills the
// captured display and holds keyboard focus, which OS-level key events need.
//
// Returns:
//   - error: Launch or navigation error (timeout, missing binary), nil on
//     success
//
// Notes:
//   - chrome://dino/ only exists in Chrome and Chromium; other browsers need
//     the page opened manually
//   - Failed navigation can be retried by calling Start() again
func (b *Browser) Start() error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false), // the game must be visible to capture
		chromedp.Flag("disable-gpu", false),
		chromedp.Flag("start-maximized", true),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	LogInfo("Browser allocator context created")

	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx, chromedp.WithLogf(func(format string, args ...interface{}) {
		LogDebug(format, args...)
	}))
	LogInfo("Browser context created")

	LogInfo("Navigating to %s", gameURL)
	navCtx, navCancel := context.WithTimeout(b.ctx, 30*time.Second)
	defer navCancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(gameURL)); err != nil {
		LogError("Navigation error: %v", err)
		return err
	}

	LogInfo("Navigation completed successfully")

	if !b.CheckGameLoaded() {
		LogWarn("Runner page did not validate; the game may still work if visible")
	}
	return nil
}

// CheckGameLoaded checks whether the dino runner is present on the page.
func (b *Browser) CheckGameLoaded() bool {
	if b.ctx == nil || b.ctx.Err() != nil {
		LogDebug("Browser context is invalid")
		return false
	}

	var loaded bool
	checkCtx, cancel := context.WithTimeout(b.ctx, 2*time.Second)
	defer cancel()

	err := chromedp.Run(checkCtx,
		chromedp.Evaluate(`document.querySelector('.runner-canvas') !== null`, &loaded),
	)
	if err != nil {
		LogDebug("Failed to check runner canvas: %v", err)
		return false
	}

	return loaded
}

// Focus brings the game tab back to the foreground so OS key events reach it.
func (b *Browser) Focus() error {
	if b.ctx == nil || b.ctx.Err() != nil {
		return fmt.Errorf("browser context is invalid")
	}

	focusCtx, cancel := context.WithTimeout(b.ctx, 2*time.Second)
	defer cancel()

	return chromedp.Run(focusCtx,
		chromedp.Evaluate(`window.focus()`, nil),
	)
}

// Close closes the browser.
func (b *Browser) Close() {
	LogInfo("Closing browser...")
	if b.cancel != nil {
		LogDebug("Cancelling browser context")
		b.cancel()
	}
	if b.allocCancel != nil {
		LogDebug("Cancelling allocator context")
		b.allocCancel()
	}
	LogInfo("Browser closed successfully")
}
