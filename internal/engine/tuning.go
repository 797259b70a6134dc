package engine

import (
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/track"
)

// Tuning is the set of pipeline parameters adjustable at runtime.
type Tuning struct {
	SmoothingAlpha float64 `json:"smoothing_alpha"`
	PinchStart     float64 `json:"pinch_start"`
	PinchEnd       float64 `json:"pinch_end"`
	FPS            int     `json:"fps"`
}

// Tuning returns the current pipeline parameters.
func (e *Engine) Tuning() Tuning {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tuning
}

// ApplyTuning replaces the smoother and classifier with newly tuned
// instances. Gesture history restarts, which costs at most a couple of
// frames of vote warm-up. The tick loop and camera pick up the new FPS
// on their next cycle.
func (e *Engine) ApplyTuning(t Tuning) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t.SmoothingAlpha <= 0 || t.SmoothingAlpha > 1 {
		t.SmoothingAlpha = track.DefaultAlpha
	}
	if t.PinchStart <= 0 {
		t.PinchStart = gesture.DefaultConfig().PinchStart
	}
	if t.PinchEnd < t.PinchStart {
		t.PinchEnd = gesture.DefaultConfig().PinchEnd
	}
	if t.FPS <= 0 {
		t.FPS = e.config.FPS
	}

	classifierConfig := gesture.DefaultConfig()
	classifierConfig.PinchStart = t.PinchStart
	classifierConfig.PinchEnd = t.PinchEnd

	e.smoother = track.NewSmoother(t.SmoothingAlpha)
	e.classifier = gesture.NewClassifier(classifierConfig)
	e.camera.SetFPS(t.FPS)
	e.tuning = t
}
