package main

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

func TestClassifySceneDay(t *testing.T) {
	// Sky strip is rows [10,30) above a dino at (40,30) with height 20.
	// Saturate 70% of it: ratio 0.7 > threshold 0.5 means day.
	gray := grayMat(100, 100, 0)
	defer gray.Close()
	fillRegion(gray, image.Rect(0, 10, 100, 24), 255)

	if got := classifyScene(gray, image.Pt(40, 30), 20, 0.5); got != SceneDay {
		t.Errorf("classifyScene = %v, want day", got)
	}
}

func TestClassifySceneNight(t *testing.T) {
	gray := grayMat(100, 100, 0)
	defer gray.Close()

	if got := classifyScene(gray, image.Pt(40, 30), 20, 0.5); got != SceneNight {
		t.Errorf("dark sky classified as %v, want night", got)
	}
}

func TestClassifySceneNearWhiteIsNotDay(t *testing.T) {
	// 254 is bright but not saturated; only full 255 counts as day sky.
	gray := grayMat(100, 100, 254)
	defer gray.Close()

	if got := classifyScene(gray, image.Pt(40, 30), 20, 0.5); got != SceneNight {
		t.Errorf("near-white sky classified as %v, want night", got)
	}
}

func TestClassifySceneEmptyStripDefaultsToNight(t *testing.T) {
	// Dino at the very top of the frame: no sky strip to sample.
	gray := grayMat(100, 100, 255)
	defer gray.Close()

	if got := classifyScene(gray, image.Pt(40, 0), 20, 0.5); got != SceneNight {
		t.Errorf("empty strip classified as %v, want night", got)
	}
}

func TestClassifySceneIdempotent(t *testing.T) {
	gray := grayMat(100, 100, 0)
	defer gray.Close()
	fillRegion(gray, image.Rect(0, 10, 100, 30), 255)

	first := classifyScene(gray, image.Pt(40, 30), 20, 0.5)
	second := classifyScene(gray, image.Pt(40, 30), 20, 0.5)
	if first != second {
		t.Errorf("classification changed between identical calls: %v then %v", first, second)
	}
}

func TestClassifySceneClipsStripAtTopEdge(t *testing.T) {
	// Dino higher than its own height: the strip clips to rows [0,15) and
	// still classifies from what remains.
	gray := grayMat(100, 100, 255)
	defer gray.Close()

	if got := classifyScene(gray, image.Pt(40, 15), 20, 0.5); got != SceneDay {
		t.Errorf("clipped white strip classified as %v, want day", got)
	}
}
