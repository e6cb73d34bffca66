// Package main - scene.go
//
// This file implements day/night scene classification.
//
// The dino game's daytime sky renders as uniform bright white while the
// nighttime sky is dark, so the ratio of fully saturated pixels in the strip
// directly above the dino is a cheap and robust discriminator that needs no
// template.
package main

import (
	"image"

	"gocv.io/x/gocv"
)

// classifyScene samples the sky strip above the dino and returns the scene
// mode for this frame.
//
// The strip covers rows [y-templateH, y) across the full frame width, where
// (x, y) is the dino's top-left corner. A strip clipped to nothing (dino at
// the top edge of the frame) classifies as night: the conservative default,
// since night thresholds (Otsu) also cope with bright scenes while a fixed
// day threshold fails on dark ones.
//
// Classification is a pure function of the frame contents; repeated calls on
// the same frame return the same mode.
func classifyScene(gray gocv.Mat, topLeft image.Point, templateH int, dayThreshold float64) SceneMode {
	top := topLeft.Y - templateH
	if top < 0 {
		top = 0
	}
	strip := image.Rect(0, top, gray.Cols(), topLeft.Y)
	strip = strip.Intersect(image.Rect(0, 0, gray.Cols(), gray.Rows()))
	if strip.Empty() {
		return SceneNight
	}

	sky := gray.Region(strip)
	defer sky.Close()

	// Count pixels at full brightness (255). Threshold at 254 keeps exactly
	// the saturated ones.
	white := gocv.NewMat()
	defer white.Close()
	gocv.Threshold(sky, &white, 254, 255, gocv.ThresholdBinary)

	total := sky.Rows() * sky.Cols()
	if total == 0 {
		return SceneNight
	}
	ratio := float64(gocv.CountNonZero(white)) / float64(total)

	if ratio > dayThreshold {
		return SceneDay
	}
	return SceneNight
}
