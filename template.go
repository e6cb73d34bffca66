// Package main - template.go
//
// This file implements the template store holding the dino reference images.
// One template exists per scene mode (day: dark dino on white sky, night:
// light dino on dark sky). Templates are embedded in the binary, decoded at
// startup, and rescaled once to the active capture resolution.
//
// Scaling:
// The bundled templates were captured at 1920x1080. For any other capture
// resolution each axis is scaled independently
// (new_w = round(orig_w * capture_w / 1920), same for height), clamped to a
// 1px minimum, using area interpolation. Quality matters more than speed
// here since this runs exactly once.
//
// Degraded Operation:
// If exactly one template fails to decode the store keeps running with the
// remaining one and localization simply skips the missing mode. Startup only
// fails when no template is usable.
package main

import (
	"embed"
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

//go:embed assets/*.png
var assets embed.FS

// templateFiles maps each scene mode to its embedded asset path.
var templateFiles = map[SceneMode]string{
	SceneDay:   "assets/dino_day.png",
	SceneNight: "assets/dino_night.png",
}

// ErrNoTemplates is returned when no embedded template could be decoded.
// The bot cannot localize the dino without at least one usable template.
var ErrNoTemplates = fmt.Errorf("no usable dino template could be loaded")

// TemplateStore owns the decoded (and later rescaled) dino templates.
//
// The store is filled once by NewTemplateStore, optionally rescaled once by
// ScaleTo, and read-only afterwards. Mats are owned by the store and released
// by Close.
type TemplateStore struct {
	templates map[SceneMode]gocv.Mat
}

// NewTemplateStore decodes the embedded day and night templates.
//
// Returns ErrNoTemplates if neither asset decodes; a single failed mode is
// logged and skipped so the bot can run degraded on the surviving template.
func NewTemplateStore() (*TemplateStore, error) {
	store := &TemplateStore{
		templates: make(map[SceneMode]gocv.Mat),
	}

	for mode, path := range templateFiles {
		buf, err := assets.ReadFile(path)
		if err != nil {
			LogWarn("Template %s missing from assets: %v", mode, err)
			continue
		}
		mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
		if err != nil || mat.Empty() {
			LogWarn("Template %s failed to decode: %v", mode, err)
			continue
		}
		LogInfo("Loaded %s template (%dx%d)", mode, mat.Cols(), mat.Rows())
		store.templates[mode] = mat
	}

	if len(store.templates) == 0 {
		return nil, ErrNoTemplates
	}
	if len(store.templates) < len(templateFiles) {
		LogWarn("Running degraded with %d of %d templates", len(store.templates), len(templateFiles))
	}
	return store, nil
}

// ScaleTo rescales every template from the 1920x1080 reference to the given
// capture resolution. Axes scale independently so non-16:9 screens still map
// the template onto the on-screen dino.
func (ts *TemplateStore) ScaleTo(width, height int) {
	scaleW := float64(width) / float64(templateRefWidth)
	scaleH := float64(height) / float64(templateRefHeight)

	for mode, mat := range ts.templates {
		newW := int(math.Round(float64(mat.Cols()) * scaleW))
		newH := int(math.Round(float64(mat.Rows()) * scaleH))
		if newW < 1 {
			newW = 1
		}
		if newH < 1 {
			newH = 1
		}
		if newW == mat.Cols() && newH == mat.Rows() {
			continue
		}

		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		LogInfo("Rescaled %s template from %dx%d to %dx%d",
			mode, mat.Cols(), mat.Rows(), resized.Cols(), resized.Rows())
		mat.Close()
		ts.templates[mode] = resized
	}
}

// Get returns the template for a mode, with ok=false when that mode failed
// to load (degraded operation).
func (ts *TemplateStore) Get(mode SceneMode) (gocv.Mat, bool) {
	mat, ok := ts.templates[mode]
	return mat, ok
}

// Modes returns the scene modes that have a usable template.
func (ts *TemplateStore) Modes() []SceneMode {
	modes := make([]SceneMode, 0, len(ts.templates))
	for mode := range ts.templates {
		modes = append(modes, mode)
	}
	return modes
}

// Close releases all template mats.
func (ts *TemplateStore) Close() {
	for mode, mat := range ts.templates {
		mat.Close()
		delete(ts.templates, mode)
	}
}
