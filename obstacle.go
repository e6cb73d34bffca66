// Package main - obstacle.go
//
// This file implements obstacle band extraction and evaluation.
//
// Geometry:
// Around the dino's cached box (top-left x,y, size w,h) a slightly enlarged
// vertical window is laid out: top' = y - 0.5h, height' = 1.5h. The window
// splits into thirds. The first third overlaps the dino's own head and is
// intentionally unused (self-detection), the middle third is the airborne
// obstacle zone and the final third the ground obstacle zone. Horizontally
// both bands cover one template width starting (scale-1) widths ahead of the
// dino; the scale grows over the run (see DinoParams.ScaleWAt) so the scan
// keeps pace with the accelerating obstacles.
//
// Binarization:
// Day frames use a fixed threshold at 180 (the daytime background is
// uniformly white, obstacles uniformly dark). Night backgrounds vary in
// darkness, so night frames use Otsu's automatic bimodal threshold instead.
//
// Edge Cases:
// Bands are clipped to the frame; a band that clips to nothing yields a 0.0
// contrast ratio, never an error.
package main

import (
	"image"

	"gocv.io/x/gocv"
)

// dayBinarizeThreshold is the fixed daytime binarization cutoff (8-bit gray).
const dayBinarizeThreshold = 180

// scanBands computes the middle and bottom scan rectangles (unclipped) for a
// dino box and forward scale. Pure geometry, shared by the live loop, the
// offline analyzer and the debug overlay.
func scanBands(topLeft image.Point, templateW, templateH int, scaleW float64) (middle, bottom image.Rectangle) {
	x := float64(topLeft.X)
	y := float64(topLeft.Y)
	h := float64(templateH)
	w := float64(templateW)

	newTop := y - 0.5*h
	newH := 1.5 * h

	left := int(x + (scaleW-1)*w)
	right := int(x + scaleW*w)

	middle = image.Rect(left, int(newTop+newH/3), right, int(newTop+2*newH/3))
	bottom = image.Rect(left, int(newTop+2*newH/3), right, int(newTop+newH))
	return middle, bottom
}

// extractBand clips the rectangle to the frame and returns the sub-region.
// A rectangle that clips to nothing returns an empty Mat. The returned Mat
// is a view into gray; the caller closes it.
func extractBand(gray gocv.Mat, rect image.Rectangle) gocv.Mat {
	clipped := rect.Intersect(image.Rect(0, 0, gray.Cols(), gray.Rows()))
	if clipped.Empty() {
		return gocv.NewMat()
	}
	return gray.Region(clipped)
}

// binarizeBand thresholds a grayscale band to a black/white Mat, selecting
// the fixed day threshold or Otsu's method by scene mode. The caller closes
// the returned Mat. Empty bands pass through untouched.
func binarizeBand(band gocv.Mat, mode SceneMode) gocv.Mat {
	if band.Empty() {
		return gocv.NewMat()
	}
	out := gocv.NewMat()
	if mode == SceneDay {
		gocv.Threshold(band, &out, dayBinarizeThreshold, 255, gocv.ThresholdBinary)
	} else {
		gocv.Threshold(band, &out, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)
	}
	return out
}

// bandContrast returns the fraction of white pixels in a binarized band,
// 0.0 for an empty band.
func bandContrast(bin gocv.Mat) float64 {
	total := bin.Rows() * bin.Cols()
	if total == 0 {
		return 0.0
	}
	return float64(gocv.CountNonZero(bin)) / float64(total)
}

// obstacleContrasts runs the full extract-binarize-measure pipeline for one
// frame and returns the middle and bottom contrast ratios. When a debug view
// is attached the binarized bands are forwarded to it before being released.
func obstacleContrasts(gray gocv.Mat, state *TrackState, mode SceneMode, scaleW float64, debug *DebugView) (middleRatio, bottomRatio float64) {
	middleRect, bottomRect := scanBands(state.TopLeft, state.TemplateW, state.TemplateH, scaleW)

	middle := extractBand(gray, middleRect)
	bottom := extractBand(gray, bottomRect)
	defer middle.Close()
	defer bottom.Close()

	middleBin := binarizeBand(middle, mode)
	bottomBin := binarizeBand(bottom, mode)
	defer middleBin.Close()
	defer bottomBin.Close()

	middleRatio = bandContrast(middleBin)
	bottomRatio = bandContrast(bottomBin)

	if debug != nil {
		debug.ShowBands(middleBin, bottomBin, middleRatio, bottomRatio)
	}
	return middleRatio, bottomRatio
}
