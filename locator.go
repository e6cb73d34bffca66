// Package main - locator.go
//
// This file implements dino localization via normalized template matching.
//
// Both the day and the night template are tried on every call, so the scene
// mode does not need to be known before the dino has ever been found. That
// doubles the match cost, which is acceptable: localization runs once per
// run to lock onto the dino, not once per tick.
package main

import (
	"gocv.io/x/gocv"
)

// Locator finds the dino in a frame by matching the stored templates.
type Locator struct {
	params *DinoParams
	store  *TemplateStore
}

// NewLocator creates a locator over the given template store.
func NewLocator(params *DinoParams, store *TemplateStore) *Locator {
	return &Locator{
		params: params,
		store:  store,
	}
}

// Locate runs normalized cross-correlation matching of every available
// template over the full frame and keeps the best-scoring hit.
//
// The returned Match is Found only when the best score reaches the
// configured confidence threshold. Matching is deterministic: the same frame
// and template set always produce the same Match.
func (l *Locator) Locate(frame gocv.Mat) Match {
	var best Match

	for _, mode := range []SceneMode{SceneNight, SceneDay} {
		template, ok := l.store.Get(mode)
		if !ok {
			continue
		}
		if template.Rows() > frame.Rows() || template.Cols() > frame.Cols() {
			LogWarn("Template %s (%dx%d) larger than frame (%dx%d), skipping",
				mode, template.Cols(), template.Rows(), frame.Cols(), frame.Rows())
			continue
		}

		result := gocv.NewMat()
		mask := gocv.NewMat()
		gocv.MatchTemplate(frame, template, &result, gocv.TmCcoeffNormed, mask)
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)
		mask.Close()
		result.Close()

		if float64(maxVal) > best.Confidence {
			best.Confidence = float64(maxVal)
			best.TopLeft = maxLoc
			best.Width = template.Cols()
			best.Height = template.Rows()
		}
	}

	best.Found = best.Confidence >= l.params.ConfidenceThreshold
	return best
}
