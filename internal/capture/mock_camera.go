package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrNoFrames is returned by MockCamera when playback has nothing left
// to serve.
var ErrNoFrames = errors.New("no frames available")

// MockCamera plays a canned frame sequence back through the Camera
// interface, optionally looping. Tests use it in place of real hardware.
type MockCamera struct {
	mu     sync.Mutex
	frames []*gocv.Mat
	cursor int
	loop   bool
	open   bool
}

// NewMockCamera creates a MockCamera over the given frame sequence.
// With loop set, playback wraps around instead of running dry.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{frames: frames, loop: loop}
}

// Open rewinds playback and marks the camera open.
func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.cursor = 0
	return nil
}

// Close marks the camera closed; subsequent reads fail.
func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

// ReadFrame returns a clone of the next frame so callers can mutate or
// close it without touching the canned sequence.
func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, ErrNoFrames
	}

	if c.cursor >= len(c.frames) {
		if !c.loop {
			return nil, ErrNoFrames
		}
		c.cursor = 0
	}

	frame := c.frames[c.cursor].Clone()
	c.cursor++
	return &frame, nil
}

// SetFPS is a no-op; playback has no real frame rate.
func (c *MockCamera) SetFPS(fps int) {}

// FPS reports the default rate, matching what a fresh camera would.
func (c *MockCamera) FPS() int { return DefaultFPS }

// IsOpen reports whether the camera is open.
func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetFrames swaps in a new sequence and rewinds playback.
func (c *MockCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.cursor = 0
}

// Reset rewinds playback without touching the sequence.
func (c *MockCamera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = 0
}
