// Package gesture converts smoothed hand landmarks into a stable discrete
// gesture state.
package gesture

import "github.com/ayusman/mudra/internal/detector"

// Type identifies a discrete hand gesture.
type Type string

const (
	// TypeNone means no recognizable gesture.
	TypeNone Type = "none"
	// TypeFist is a closed fist.
	TypeFist Type = "fist"
	// TypeOpen is an open palm.
	TypeOpen Type = "open"
	// TypePinch is thumb and index tips held together.
	TypePinch Type = "pinch"
	// TypePeace is index and middle extended.
	TypePeace Type = "peace"
	// TypeThumbsUp is thumb-only extension.
	TypeThumbsUp Type = "thumbs_up"
	// TypePointing is index-only extension.
	TypePointing Type = "pointing"
	// TypeRock is index and pinky extended.
	TypeRock Type = "rock"
)

// FingerStates records which fingers passed the extension test.
type FingerStates struct {
	Thumb  bool `json:"thumb"`
	Index  bool `json:"index"`
	Middle bool `json:"middle"`
	Ring   bool `json:"ring"`
	Pinky  bool `json:"pinky"`
}

// Count returns the number of extended fingers.
func (f FingerStates) Count() int {
	n := 0
	for _, ext := range [5]bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky} {
		if ext {
			n++
		}
	}
	return n
}

// State is the per-frame classification result.
type State struct {
	Type          Type             `json:"type"`
	Confidence    float64          `json:"confidence"`
	PalmCenter    detector.Point3D `json:"palm_center"`
	PinchCenter   detector.Point3D `json:"pinch_center"`
	PinchDistance float64          `json:"pinch_distance"`
	Fingers       FingerStates     `json:"fingers"`
}

// Config holds the classifier tunables.
type Config struct {
	// ThumbRatio is the extension threshold for the thumb: extended when
	// distance(thumbTip, indexMCP) > ThumbRatio * distance(thumbMCP, indexMCP).
	ThumbRatio float64

	// FingerRatio is the extension threshold for the other fingers:
	// extended when distance(tip, wrist) > FingerRatio * distance(pip, wrist).
	FingerRatio float64

	// HistoryLen is the ring buffer length for the temporal majority vote.
	HistoryLen int

	// PinchStart engages the pinch when the thumb-index tip distance drops
	// below it; PinchEnd releases the pinch when the distance exceeds it.
	// The gap between the two suppresses flicker at the boundary.
	PinchStart float64
	PinchEnd   float64
}

// DefaultConfig returns the classifier defaults.
func DefaultConfig() Config {
	return Config{
		ThumbRatio:  0.8,
		FingerRatio: 1.1,
		HistoryLen:  3,
		PinchStart:  0.06,
		PinchEnd:    0.10,
	}
}
