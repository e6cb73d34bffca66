// Package main - analyze.go
//
// This file implements the offline analysis mode (--analyze <image>).
//
// Instead of capturing the live screen, the full perception pipeline runs
// once over a saved screenshot and prints what the bot would have seen:
// dino position and confidence, scene classification, and the band contrasts
// at both ends of the scan scale range. An annotated copy of the image is
// written next to the input for visual inspection.
//
// This is the tool for tuning data.json thresholds against screenshots of
// runs that went wrong, without having to reproduce them live.
package main

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// RunAnalysis processes a single screenshot and reports the pipeline result.
func RunAnalysis(imagePath string) error {
	frame := gocv.IMRead(imagePath, gocv.IMReadColor)
	if frame.Empty() {
		return fmt.Errorf("failed to read image: %s", imagePath)
	}
	defer frame.Close()

	data, err := LoadData()
	if err != nil {
		LogError("Failed to load data: %v, using defaults", err)
		data = NewPersistentData()
	}
	params := data.Params

	store, err := NewTemplateStore()
	if err != nil {
		return err
	}
	defer store.Close()
	store.ScaleTo(frame.Cols(), frame.Rows())

	fmt.Printf("Analyzing %s (%dx%d)\n", imagePath, frame.Cols(), frame.Rows())

	locator := NewLocator(params, store)
	match := locator.Locate(frame)
	fmt.Printf("Best match: confidence %.3f (threshold %.2f)\n", match.Confidence, params.ConfidenceThreshold)
	if !match.Found {
		fmt.Println("Dino not found; nothing further to analyze")
		return nil
	}
	fmt.Printf("Dino at (%d,%d), box %dx%d\n", match.TopLeft.X, match.TopLeft.Y, match.Width, match.Height)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorRGBToGray)

	state := &TrackState{
		Located:   true,
		TopLeft:   match.TopLeft,
		TemplateW: match.Width,
		TemplateH: match.Height,
	}

	mode := classifyScene(gray, match.TopLeft, match.Height, params.DayThreshold)
	fmt.Printf("Scene: %s\n", mode)

	// A still image carries no run clock, so report both ends of the scan
	// range instead of one point on it.
	for _, scaleW := range []float64{params.InitScaleW, params.LateScaleW} {
		middleRatio, bottomRatio := obstacleContrasts(gray, state, mode, scaleW, nil)
		middleHit := params.IsObstacle(middleRatio)
		bottomHit := params.IsObstacle(bottomRatio)
		fmt.Printf("scale %.2f: middle %.3f (obstacle: %v), bottom %.3f (obstacle: %v)\n",
			scaleW, middleRatio, middleHit, bottomRatio, bottomHit)
	}

	outPath := analysisOutputPath(imagePath)
	if err := writeAnnotated(frame, state, mode, params.LateScaleW, outPath); err != nil {
		return err
	}
	fmt.Printf("Annotated image written to %s\n", outPath)
	return nil
}

// writeAnnotated saves a copy of the frame with the dino box and the widest
// scan bands drawn in.
func writeAnnotated(frame gocv.Mat, state *TrackState, mode SceneMode, scaleW float64, outPath string) error {
	annotated := frame.Clone()
	defer annotated.Close()

	dinoBox := image.Rect(state.TopLeft.X, state.TopLeft.Y,
		state.TopLeft.X+state.TemplateW, state.TopLeft.Y+state.TemplateH)
	gocv.Rectangle(&annotated, dinoBox, color.RGBA{0, 255, 0, 0}, 2)

	middleRect, bottomRect := scanBands(state.TopLeft, state.TemplateW, state.TemplateH, scaleW)
	gocv.Rectangle(&annotated, middleRect, color.RGBA{255, 255, 0, 0}, 2)
	gocv.Rectangle(&annotated, bottomRect, color.RGBA{255, 0, 0, 0}, 2)
	gocv.PutText(&annotated, fmt.Sprintf("%s scale=%.2f", mode, scaleW),
		image.Pt(10, 30), gocv.FontHersheyPlain, 2, color.RGBA{0, 255, 0, 0}, 2)

	if ok := gocv.IMWrite(outPath, annotated); !ok {
		return fmt.Errorf("failed to write %s", outPath)
	}
	return nil
}

// analysisOutputPath derives "shot_analyzed.png" from "shot.png".
func analysisOutputPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	base := strings.TrimSuffix(imagePath, ext)
	if ext == "" {
		ext = ".png"
	}
	return base + "_analyzed" + ext
}
