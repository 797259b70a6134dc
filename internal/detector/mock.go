package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Observation
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Observation) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture hand poses share one skeleton: wrist at (0.50, 0.80) with the
// knuckle row above it, fingers either curled back toward the palm or
// extended upward. All poses are right hands facing the camera.

func baseSkeleton() Observation {
	obs := Observation{
		Handedness: "Right",
		Score:      0.95,
	}

	obs.Landmarks[Wrist] = Point3D{X: 0.50, Y: 0.80}
	obs.Landmarks[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	obs.Landmarks[ThumbMCP] = Point3D{X: 0.60, Y: 0.72}
	obs.Landmarks[IndexMCP] = Point3D{X: 0.52, Y: 0.62}
	obs.Landmarks[MiddleMCP] = Point3D{X: 0.49, Y: 0.61}
	obs.Landmarks[RingMCP] = Point3D{X: 0.46, Y: 0.62}
	obs.Landmarks[PinkyMCP] = Point3D{X: 0.43, Y: 0.64}

	return obs
}

func curlThumb(obs *Observation) {
	obs.Landmarks[ThumbIP] = Point3D{X: 0.57, Y: 0.68}
	obs.Landmarks[ThumbTip] = Point3D{X: 0.54, Y: 0.66}
}

func extendThumb(obs *Observation) {
	obs.Landmarks[ThumbIP] = Point3D{X: 0.63, Y: 0.58}
	obs.Landmarks[ThumbTip] = Point3D{X: 0.66, Y: 0.52}
}

func curlIndex(obs *Observation) {
	obs.Landmarks[IndexPIP] = Point3D{X: 0.52, Y: 0.56}
	obs.Landmarks[IndexDIP] = Point3D{X: 0.51, Y: 0.58}
	obs.Landmarks[IndexTip] = Point3D{X: 0.51, Y: 0.60}
}

func extendIndex(obs *Observation) {
	obs.Landmarks[IndexPIP] = Point3D{X: 0.53, Y: 0.50}
	obs.Landmarks[IndexDIP] = Point3D{X: 0.54, Y: 0.42}
	obs.Landmarks[IndexTip] = Point3D{X: 0.55, Y: 0.35}
}

func curlMiddle(obs *Observation) {
	obs.Landmarks[MiddlePIP] = Point3D{X: 0.49, Y: 0.55}
	obs.Landmarks[MiddleDIP] = Point3D{X: 0.48, Y: 0.57}
	obs.Landmarks[MiddleTip] = Point3D{X: 0.48, Y: 0.60}
}

func extendMiddle(obs *Observation) {
	obs.Landmarks[MiddlePIP] = Point3D{X: 0.49, Y: 0.50}
	obs.Landmarks[MiddleDIP] = Point3D{X: 0.49, Y: 0.41}
	obs.Landmarks[MiddleTip] = Point3D{X: 0.49, Y: 0.32}
}

func curlRing(obs *Observation) {
	obs.Landmarks[RingPIP] = Point3D{X: 0.45, Y: 0.57}
	obs.Landmarks[RingDIP] = Point3D{X: 0.45, Y: 0.59}
	obs.Landmarks[RingTip] = Point3D{X: 0.45, Y: 0.61}
}

func extendRing(obs *Observation) {
	obs.Landmarks[RingPIP] = Point3D{X: 0.44, Y: 0.52}
	obs.Landmarks[RingDIP] = Point3D{X: 0.43, Y: 0.43}
	obs.Landmarks[RingTip] = Point3D{X: 0.42, Y: 0.34}
}

func curlPinky(obs *Observation) {
	obs.Landmarks[PinkyPIP] = Point3D{X: 0.42, Y: 0.60}
	obs.Landmarks[PinkyDIP] = Point3D{X: 0.42, Y: 0.62}
	obs.Landmarks[PinkyTip] = Point3D{X: 0.42, Y: 0.64}
}

func extendPinky(obs *Observation) {
	obs.Landmarks[PinkyPIP] = Point3D{X: 0.41, Y: 0.55}
	obs.Landmarks[PinkyDIP] = Point3D{X: 0.39, Y: 0.46}
	obs.Landmarks[PinkyTip] = Point3D{X: 0.38, Y: 0.38}
}

// FistLandmarks returns a closed fist: every finger curled, thumb wrapped
// across the fingers.
func FistLandmarks() Observation {
	obs := baseSkeleton()
	curlThumb(&obs)
	curlIndex(&obs)
	curlMiddle(&obs)
	curlRing(&obs)
	curlPinky(&obs)
	return obs
}

// OpenPalmLandmarks returns an open palm with all five fingers extended.
func OpenPalmLandmarks() Observation {
	obs := baseSkeleton()
	extendThumb(&obs)
	extendIndex(&obs)
	extendMiddle(&obs)
	extendRing(&obs)
	extendPinky(&obs)
	return obs
}

// ThumbsUpLandmarks returns a thumbs up: thumb extended, other fingers curled.
func ThumbsUpLandmarks() Observation {
	obs := baseSkeleton()
	extendThumb(&obs)
	curlIndex(&obs)
	curlMiddle(&obs)
	curlRing(&obs)
	curlPinky(&obs)
	return obs
}

// PointingLandmarks returns an index-only point.
func PointingLandmarks() Observation {
	obs := baseSkeleton()
	curlThumb(&obs)
	extendIndex(&obs)
	curlMiddle(&obs)
	curlRing(&obs)
	curlPinky(&obs)
	return obs
}

// PeaceLandmarks returns a V sign: index and middle extended.
func PeaceLandmarks() Observation {
	obs := baseSkeleton()
	curlThumb(&obs)
	extendIndex(&obs)
	extendMiddle(&obs)
	curlRing(&obs)
	curlPinky(&obs)
	return obs
}

// RockLandmarks returns the horns: index and pinky extended.
func RockLandmarks() Observation {
	obs := baseSkeleton()
	curlThumb(&obs)
	extendIndex(&obs)
	curlMiddle(&obs)
	curlRing(&obs)
	extendPinky(&obs)
	return obs
}

// PinchLandmarks returns a pinch: thumb tip and index tip touching while
// the remaining fingers stay extended.
func PinchLandmarks() Observation {
	obs := baseSkeleton()
	obs.Landmarks[ThumbIP] = Point3D{X: 0.60, Y: 0.61}
	obs.Landmarks[ThumbTip] = Point3D{X: 0.61, Y: 0.52}
	obs.Landmarks[IndexPIP] = Point3D{X: 0.58, Y: 0.55}
	obs.Landmarks[IndexDIP] = Point3D{X: 0.60, Y: 0.52}
	obs.Landmarks[IndexTip] = Point3D{X: 0.60, Y: 0.50}
	extendMiddle(&obs)
	extendRing(&obs)
	extendPinky(&obs)
	return obs
}

// WithWorld attaches synthetic world landmarks derived from the screen
// landmarks, translated so the wrist is at the origin. Tests that exercise
// the palm-normal path can negate World X values to simulate a flipped hand.
func WithWorld(obs Observation) Observation {
	wrist := obs.Landmarks[Wrist]
	for i := 0; i < NumLandmarks; i++ {
		obs.World[i] = Point3D{
			X: obs.Landmarks[i].X - wrist.X,
			Y: obs.Landmarks[i].Y - wrist.Y,
			Z: obs.Landmarks[i].Z - wrist.Z,
		}
	}
	obs.HasWorld = true
	return obs
}
