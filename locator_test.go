package main

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

// makeDinoTemplate builds a small patterned template: a dark square on a
// white field. Uniform templates have zero variance and break normalized
// matching, so the pattern matters.
func makeDinoTemplate() gocv.Mat {
	tmpl := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 30, 24, gocv.MatTypeCV8UC3)
	inner := tmpl.Region(image.Rect(6, 5, 18, 25))
	inner.SetTo(gocv.NewScalar(40, 40, 40, 0))
	inner.Close()
	return tmpl
}

// storeWith builds a template store directly from test mats. The store takes
// ownership; closing it releases them.
func storeWith(templates map[SceneMode]gocv.Mat) *TemplateStore {
	return &TemplateStore{templates: templates}
}

func TestLocateFindsEmbeddedTemplate(t *testing.T) {
	tmpl := makeDinoTemplate()
	store := storeWith(map[SceneMode]gocv.Mat{SceneDay: tmpl})
	defer store.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 200, 300, gocv.MatTypeCV8UC3)
	defer frame.Close()

	region := frame.Region(image.Rect(120, 80, 120+tmpl.Cols(), 80+tmpl.Rows()))
	tmpl.CopyTo(&region)
	region.Close()

	locator := NewLocator(NewDinoParams(), store)
	match := locator.Locate(frame)

	if !match.Found {
		t.Fatalf("exact copy of the template not found (confidence %v)", match.Confidence)
	}
	if match.TopLeft != image.Pt(120, 80) {
		t.Errorf("match at %v, want (120,80)", match.TopLeft)
	}
	if match.Width != tmpl.Cols() || match.Height != tmpl.Rows() {
		t.Errorf("match box %dx%d, want %dx%d", match.Width, match.Height, tmpl.Cols(), tmpl.Rows())
	}
	if match.Confidence < 0.99 {
		t.Errorf("exact copy scored %v, want ~1.0", match.Confidence)
	}
}

func TestLocateDeterministic(t *testing.T) {
	tmpl := makeDinoTemplate()
	store := storeWith(map[SceneMode]gocv.Mat{SceneDay: tmpl})
	defer store.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 200, 300, gocv.MatTypeCV8UC3)
	defer frame.Close()
	region := frame.Region(image.Rect(50, 50, 50+tmpl.Cols(), 50+tmpl.Rows()))
	tmpl.CopyTo(&region)
	region.Close()

	locator := NewLocator(NewDinoParams(), store)
	first := locator.Locate(frame)
	second := locator.Locate(frame)

	if first != second {
		t.Errorf("repeated localization diverged: %+v then %+v", first, second)
	}
}

func TestLocateSkipsOversizedTemplate(t *testing.T) {
	big := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 500, 500, gocv.MatTypeCV8UC3)
	store := storeWith(map[SceneMode]gocv.Mat{SceneDay: big})
	defer store.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer frame.Close()

	locator := NewLocator(NewDinoParams(), store)
	match := locator.Locate(frame)
	if match.Found {
		t.Errorf("oversized template must be skipped, got %+v", match)
	}
}

func TestLocateDegradedSingleTemplate(t *testing.T) {
	// Only the night template survived loading; the day mode is simply
	// skipped and matching still works.
	tmpl := makeDinoTemplate()
	store := storeWith(map[SceneMode]gocv.Mat{SceneNight: tmpl})
	defer store.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 200, 300, gocv.MatTypeCV8UC3)
	defer frame.Close()
	region := frame.Region(image.Rect(10, 20, 10+tmpl.Cols(), 20+tmpl.Rows()))
	tmpl.CopyTo(&region)
	region.Close()

	locator := NewLocator(NewDinoParams(), store)
	match := locator.Locate(frame)
	if !match.Found || match.TopLeft != image.Pt(10, 20) {
		t.Errorf("degraded store failed to locate: %+v", match)
	}
}
