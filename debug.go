// Package main - debug.go
//
// This file implements centralized logging and the optional live debug view.
//
// 1. Logging System:
//    - Thread-safe file logging to Debug.log
//    - Four log levels: DEBUG, INFO, WARN, ERROR
//    - Microsecond timestamps for timing analysis
//    - File is truncated (cleared) on each startup
//    - Global logger instance accessible via convenience functions
//
// 2. Debug View:
//    - OpenCV windows showing the captured frame (downscaled) with the dino
//      lock and the current scan bands drawn in, plus the two binarized
//      obstacle bands with their contrast ratios
//    - Purely advisory; has no effect on control decisions and every Show
//      call tolerates empty inputs
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// Logger provides thread-safe logging to the Debug.log file.
//
// Debug.log is truncated (O_TRUNC) on each startup so the file only ever
// contains the current session.
type Logger struct {
	file   *os.File
	logger *log.Logger
	mu     sync.Mutex
}

var globalLogger *Logger

// InitLogger initializes the global logger writing to Debug.log in the
// current directory.
func InitLogger() error {
	file, err := os.OpenFile("Debug.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	globalLogger = &Logger{
		file:   file,
		logger: log.New(file, "", log.LstdFlags|log.Lmicroseconds),
	}

	globalLogger.Info("Logger initialized (log file cleared)")
	return nil
}

// CloseLogger closes the log file.
func CloseLogger() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.Info("Logger closing")
		globalLogger.file.Close()
	}
}

// Debug logs debug level messages
func (l *Logger) Debug(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[DEBUG] "+format, v...)
}

// Info logs info level messages
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[INFO] "+format, v...)
}

// Warn logs warning level messages
func (l *Logger) Warn(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[WARN] "+format, v...)
}

// Error logs error level messages
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[ERROR] "+format, v...)
}

// LogDebug is a convenience function for debug logging
func LogDebug(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debug(format, v...)
	}
}

// LogInfo is a convenience function for info logging
func LogInfo(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(format, v...)
	}
}

// LogWarn is a convenience function for warning logging
func LogWarn(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(format, v...)
	}
}

// LogError is a convenience function for error logging
func LogError(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(format, v...)
	}
}

// Debug view window names.
const (
	frameWindowName  = "Screen being captured"
	middleWindowName = "middle_obstacle_band"
	bottomWindowName = "bottom_obstacle_band"
)

// DebugView renders the perception pipeline into OpenCV windows.
type DebugView struct {
	frameWin  *gocv.Window
	middleWin *gocv.Window
	bottomWin *gocv.Window
}

// NewDebugView opens the three debug windows.
func NewDebugView() *DebugView {
	return &DebugView{
		frameWin:  gocv.NewWindow(frameWindowName),
		middleWin: gocv.NewWindow(middleWindowName),
		bottomWin: gocv.NewWindow(bottomWindowName),
	}
}

// ShowFrame displays the captured frame downscaled 1:6, with the dino lock
// box and the current scan bands drawn in when the dino has been located.
func (d *DebugView) ShowFrame(frame gocv.Mat, state *TrackState, mode SceneMode, scaleW float64) {
	if d == nil || frame.Empty() {
		return
	}

	annotated := frame.Clone()
	defer annotated.Close()

	if state.Located {
		dinoBox := image.Rect(state.TopLeft.X, state.TopLeft.Y,
			state.TopLeft.X+state.TemplateW, state.TopLeft.Y+state.TemplateH)
		gocv.Rectangle(&annotated, dinoBox, color.RGBA{0, 255, 0, 0}, 2)

		middleRect, bottomRect := scanBands(state.TopLeft, state.TemplateW, state.TemplateH, scaleW)
		gocv.Rectangle(&annotated, middleRect, color.RGBA{255, 255, 0, 0}, 2)
		gocv.Rectangle(&annotated, bottomRect, color.RGBA{255, 0, 0, 0}, 2)
		gocv.PutText(&annotated, fmt.Sprintf("%s scale=%.2f", mode, scaleW),
			image.Pt(10, 30), gocv.FontHersheyPlain, 2, color.RGBA{0, 255, 0, 0}, 2)
	}

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(annotated, &small, image.Pt(annotated.Cols()/6, annotated.Rows()/6), 0, 0, gocv.InterpolationArea)

	d.frameWin.IMShow(small)
	d.frameWin.WaitKey(1)
}

// ShowBands displays the two binarized obstacle bands with their contrast
// ratios overlaid.
func (d *DebugView) ShowBands(middleBin, bottomBin gocv.Mat, middleRatio, bottomRatio float64) {
	if d == nil {
		return
	}
	d.showBand(d.middleWin, middleBin, middleRatio)
	d.showBand(d.bottomWin, bottomBin, bottomRatio)
}

func (d *DebugView) showBand(win *gocv.Window, bin gocv.Mat, ratio float64) {
	if bin.Empty() {
		return
	}
	annotated := bin.Clone()
	defer annotated.Close()
	gocv.PutText(&annotated, fmt.Sprintf("%.2f", ratio),
		image.Pt(4, 16), gocv.FontHersheyPlain, 1, color.RGBA{128, 128, 128, 0}, 1)
	win.IMShow(annotated)
	win.WaitKey(1)
}

// Close releases the debug windows.
func (d *DebugView) Close() {
	if d == nil {
		return
	}
	d.frameWin.Close()
	d.middleWin.Close()
	d.bottomWin.Close()
}
