// Package detector provides hand detection interfaces and types for the
// interaction pipeline.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point. For screen landmarks x and y are
// normalized to [0,1] in the camera image and z is a relative depth
// (more negative is closer to the camera). For world landmarks the
// coordinates are metric-ish with the origin near the wrist.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlanarDistance returns the distance between two points in the x-y plane,
// ignoring depth. The gesture heuristics compare planar distances against
// scale-relative thresholds, which keeps them approximately invariant to
// how far the hand is from the camera.
func PlanarDistance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Observation is one tracked hand for the current frame: 21 screen-space
// landmarks plus, when the detector provides them, 21 world-space landmarks.
type Observation struct {
	Landmarks  [NumLandmarks]Point3D `json:"landmarks"`
	World      [NumLandmarks]Point3D `json:"world,omitempty"`
	HasWorld   bool                  `json:"has_world"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}
