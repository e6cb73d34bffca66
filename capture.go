// Package main - capture.go
//
// This file implements screen capture, the bot's frame source.
//
// The control loop only depends on the FrameSource interface so the
// perception pipeline can be driven from synthetic frames in tests. The real
// implementation grabs a full display via robotgo and converts it to an RGB
// Mat for the vision code.
//
// Resource Model:
// robotgo's CBitmap must be freed after conversion; the returned Mat is owned
// by the caller and closed at the end of the tick. The source itself holds no
// OS handles between captures.
package main

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"gocv.io/x/gocv"
)

// CaptureError wraps a failed frame grab so the control loop can tell
// capture failures apart from other errors; the loop is designed to run
// unattended and must not die silently on one bad frame.
type CaptureError struct {
	Display int
	Err     error
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture failed on display %d: %v", e.Display, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// FrameSource produces frames for the control loop.
type FrameSource interface {
	// Capture returns the current contents of the configured region as an
	// RGB Mat. The caller owns and closes the Mat.
	Capture() (gocv.Mat, error)

	// Resolution returns the region size in pixels, used once at startup
	// to rescale the templates.
	Resolution() (width, height int)
}

// ScreenSource captures a whole display identified by index.
type ScreenSource struct {
	display    int
	x, y, w, h int
}

// NewScreenSource validates the display index and records its bounds.
func NewScreenSource(display int) (*ScreenSource, error) {
	num := robotgo.DisplaysNum()
	if display < 0 || display >= num {
		return nil, fmt.Errorf("display %d out of range (have %d displays)", display, num)
	}

	x, y, w, h := robotgo.GetDisplayBounds(display)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("display %d reports empty bounds %dx%d", display, w, h)
	}

	LogInfo("Capturing display %d: origin (%d,%d), %dx%d", display, x, y, w, h)
	return &ScreenSource{display: display, x: x, y: y, w: w, h: h}, nil
}

// Capture grabs the display and converts it to an RGB Mat.
func (s *ScreenSource) Capture() (gocv.Mat, error) {
	bitmap := robotgo.CaptureScreen(s.x, s.y, s.w, s.h)
	if bitmap == nil {
		return gocv.NewMat(), &CaptureError{Display: s.display, Err: fmt.Errorf("robotgo returned no bitmap")}
	}
	defer robotgo.FreeBitmap(bitmap)

	img := robotgo.ToImage(bitmap)
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), &CaptureError{Display: s.display, Err: err}
	}
	return mat, nil
}

// Resolution returns the captured display's size.
func (s *ScreenSource) Resolution() (int, int) {
	return s.w, s.h
}
