// Package engine runs the per-tick interaction pipeline: capture, hand
// detection, smoothing, classification, and the active scene.
package engine

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/track"
)

// DefaultFPS is the tick rate when none is configured.
const DefaultFPS = 30

// Config holds configuration options for the engine.
type Config struct {
	Store    *store.Store
	CameraID int
	FPS      int

	// Particles overrides the swarm scene's particle count when positive.
	Particles int
}

// Engine orchestrates the pipeline and owns the active scene.
//
// All interaction state is mutated inside the tick goroutine; the mutex
// only guards the values other goroutines read (the enable flag, the
// active scene handle, and the latest snapshot).
type Engine struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	smoother   *track.Smoother
	classifier *gesture.Classifier

	mu        sync.RWMutex
	scene     scene.Scene
	snapshot  scene.RenderState
	sessionID string
	enabled   bool
	stopCh    chan struct{}
	tick      uint64
	tuning    Tuning
}

// New creates an Engine with the given configuration and initial scene.
func New(config Config, initial scene.Scene) *Engine {
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}

	e := &Engine{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		smoother:   track.NewSmoother(track.DefaultAlpha),
		classifier: gesture.NewClassifier(gesture.DefaultConfig()),
		scene:      initial,
		tuning: Tuning{
			SmoothingAlpha: track.DefaultAlpha,
			PinchStart:     gesture.DefaultConfig().PinchStart,
			PinchEnd:       gesture.DefaultConfig().PinchEnd,
			FPS:            config.FPS,
		},
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		e.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		e.detector = detector.NewMockDetector()
	}

	return e
}

// SetEnabled enables or disables the pipeline. While disabled, ticks are
// skipped and the scene keeps its last state.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// IsEnabled returns whether the pipeline is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetCamera replaces the camera. Used by tests.
func (e *Engine) SetCamera(c capture.Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera = c
}

// SetDetector replaces the hand detector implementation.
func (e *Engine) SetDetector(d detector.Detector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detector = d
}

// Camera returns the camera instance, for the MJPEG stream handler.
func (e *Engine) Camera() capture.Camera {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.camera
}

// Scene returns the active scene.
func (e *Engine) Scene() scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scene
}

// SceneName returns the active scene's name.
func (e *Engine) SceneName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.scene == nil {
		return ""
	}
	return e.scene.Name()
}

// SetScene swaps the active scene, ending the current session and
// starting a new one. Smoothing and gesture history restart so the new
// scene never sees state blended across scenes.
func (e *Engine) SetScene(s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.endSessionLocked()
	e.scene = s
	e.resetSlotsLocked()
	if e.stopCh != nil {
		e.startSessionLocked()
	}
}

// Snapshot returns the render state produced by the most recent tick.
func (e *Engine) Snapshot() scene.RenderState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// SessionID returns the active session's ID, empty when stopped.
func (e *Engine) SessionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessionID
}

// Start opens the camera and begins the tick loop.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Don't start if already running
	if e.stopCh != nil {
		return nil
	}

	if err := e.camera.Open(); err != nil {
		return err
	}
	e.camera.SetFPS(e.tuning.FPS)

	e.startSessionLocked()
	e.stopCh = make(chan struct{})
	go e.run(e.stopCh)

	log.Println("Interaction pipeline started")
	return nil
}

// Stop halts the tick loop and releases resources.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}

	e.endSessionLocked()

	if err := e.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if e.detector != nil {
		if err := e.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Interaction pipeline stopped")
}

func (e *Engine) startSessionLocked() {
	if e.config.Store == nil || e.scene == nil {
		return
	}

	sess := &store.Session{ID: uuid.NewString(), Scene: e.scene.Name()}
	if err := e.config.Store.Sessions().Create(sess); err != nil {
		log.Printf("Failed to create session: %v", err)
		return
	}
	e.sessionID = sess.ID
}

func (e *Engine) endSessionLocked() {
	if e.config.Store == nil || e.sessionID == "" {
		return
	}

	if err := e.config.Store.Sessions().End(e.sessionID); err != nil {
		log.Printf("Failed to end session: %v", err)
	}
	e.sessionID = ""
}

func (e *Engine) resetSlotsLocked() {
	for slot := 0; slot < track.MaxSlots; slot++ {
		e.smoother.Reset(slot)
		e.classifier.Reset(slot)
	}
}
