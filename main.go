// Package main implements an automated player for the Chrome dino game.
//
// Architecture Overview:
// The bot is a closed loop over the OS: it watches the screen through a
// display grab, finds the dino by template matching, and presses real keys
// to jump and duck. It never talks to the game's internals; Chrome is only
// (optionally) launched so chrome://dino/ ends up on screen.
//
// The program consists of three concurrent components:
//
//  1. Control Loop Goroutine: Captures frames and runs the perception
//     pipeline (localize, classify day/night, extract obstacle bands) and
//     the action policy (jump/duck/combo/idle reset). See bot.go.
//
//  2. Browser Goroutine: Optional chromedp launcher that opens and validates
//     chrome://dino/. Failure here never stops the loop; the user can open
//     the page by hand.
//
//  3. System Tray: Status line, pause toggle and quit. The tray owns the
//     main thread (systray.Run blocks); the loop starts from its onReady.
//
// Startup Sequence:
//   - Logger setup, flag parsing, data.json loading
//   - Screen source validation and template rescaling to the display size
//   - System tray creation (blocking); tray onReady starts browser + loop
//   - Loop searches every frame until the dino template matches, then plays
//
// Shutdown is graceful on tray quit and on SIGINT/SIGTERM: the loop drains,
// windows and browser contexts close, parameters flush to data.json.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the bot application and manages the execution lifecycle.
//
// Installs signal handlers for graceful termination, then starts the
// blocking system tray UI. The tray's onReady callback launches the browser
// and the control loop; this function blocks until the tray exits.
func (b *Bot) Run() {
	LogInfo("Setting up signal handlers...")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		LogInfo("Signal received: %v, shutting down gracefully...", sig)
		b.Stop()
		LogInfo("Closing logger...")
		CloseLogger()
		LogInfo("Exiting with code 0")
		os.Exit(0)
	}()

	LogInfo("Signal handlers configured")

	// Run system tray (blocking) - tray will trigger the main loop start
	LogInfo("Starting system tray (loop will start when tray is ready)...")
	b.tray.Run()
	LogInfo("System tray exited")

	b.Stop()
}

// main is the application entry point.
//
// Exit Codes:
//   - 0: Normal exit (user quit)
//   - 1: Logger/startup initialization failed
//   - 2: Unhandled panic occurred
func main() {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			LogError("PANIC in main: %v", r)
			CloseLogger()
			os.Exit(2)
		}
	}()

	display := flag.Int("screen", 0, "display index to capture")
	openChrome := flag.Bool("open-chrome", true, "launch Chrome on chrome://dino/ at startup")
	chromePath := flag.String("chrome-path", "", "path to the Chrome executable (default: auto-detect)")
	debug := flag.Bool("debug", false, "show live debug windows")
	analyze := flag.String("analyze", "", "analyze a saved screenshot instead of running the bot")
	flag.Parse()

	// Initialize logger
	if err := InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		LogInfo("=== Dino Bot Shutdown ===")
		CloseLogger()
	}()

	LogInfo("=== Dino Bot Started ===")

	if *analyze != "" {
		LogInfo("Analysis mode requested for %s", *analyze)
		if err := RunAnalysis(*analyze); err != nil {
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
			LogError("Analysis failed: %v", err)
			os.Exit(1)
		}
		return
	}

	LogInfo("Creating bot instance...")
	bot, err := NewBot(BotOptions{
		Display:    *display,
		OpenChrome: *openChrome,
		ChromePath: *chromePath,
		Debug:      *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		LogError("Failed to initialize: %v", err)
		os.Exit(1)
	}

	LogInfo("Bot instance created, starting main run...")
	bot.Run()
	LogInfo("Bot Run() returned normally")
}
