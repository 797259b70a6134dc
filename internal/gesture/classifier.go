package gesture

import (
	"github.com/ayusman/mudra/internal/detector"
)

// maxSlots matches the number of hand slots the detector tracks.
const maxSlots = 2

// slotState is the cross-frame classifier state for one hand slot: the raw
// classification ring buffer for the majority vote and the pinch hysteresis
// latch.
type slotState struct {
	history  []Type
	next     int
	filled   int
	pinching bool
}

// Classifier turns a landmark set into a State. It is the only component
// that owns cross-frame gesture state; everything else is derived fresh
// each frame.
type Classifier struct {
	config Config
	slots  [maxSlots]slotState
}

// NewClassifier creates a Classifier with the given configuration.
func NewClassifier(config Config) *Classifier {
	if config.HistoryLen <= 0 {
		config.HistoryLen = DefaultConfig().HistoryLen
	}
	c := &Classifier{config: config}
	for i := range c.slots {
		c.slots[i].history = make([]Type, config.HistoryLen)
	}
	return c
}

// Classify derives the gesture state for one hand slot. Fewer than 21
// landmarks fail soft: the result is TypeNone with zero confidence and the
// slot history is left untouched.
func (c *Classifier) Classify(landmarks []detector.Point3D, slot int) State {
	if len(landmarks) < detector.NumLandmarks || slot < 0 || slot >= maxSlots {
		return State{Type: TypeNone}
	}

	fingers := c.fingerStates(landmarks)

	pinchDist := detector.PlanarDistance(landmarks[detector.ThumbTip], landmarks[detector.IndexTip])
	raw := c.rawClassify(fingers, pinchDist, slot)

	emitted, confidence := c.vote(raw, slot)

	thumbTip := landmarks[detector.ThumbTip]
	indexTip := landmarks[detector.IndexTip]

	return State{
		Type:       emitted,
		Confidence: confidence,
		PalmCenter: palmCenter(landmarks),
		PinchCenter: detector.Point3D{
			X: (thumbTip.X + indexTip.X) / 2,
			Y: (thumbTip.Y + indexTip.Y) / 2,
			Z: (thumbTip.Z + indexTip.Z) / 2,
		},
		PinchDistance: pinchDist,
		Fingers:       fingers,
	}
}

// Reset clears the history and pinch latch for a slot. Called when the
// detector stops reporting a hand there.
func (c *Classifier) Reset(slot int) {
	if slot < 0 || slot >= maxSlots {
		return
	}
	s := &c.slots[slot]
	s.next = 0
	s.filled = 0
	s.pinching = false
}

// fingerStates runs the planar, scale-relative extension test. The thumb is
// measured against the index MCP because its tip never strays far from the
// wrist; the other four fingers compare tip and PIP distances from the wrist.
func (c *Classifier) fingerStates(lm []detector.Point3D) FingerStates {
	wrist := lm[detector.Wrist]
	indexMCP := lm[detector.IndexMCP]

	tipDist := detector.PlanarDistance(lm[detector.ThumbTip], indexMCP)
	baseDist := detector.PlanarDistance(lm[detector.ThumbMCP], indexMCP)

	extended := func(tip, pip int) bool {
		return detector.PlanarDistance(lm[tip], wrist) > c.config.FingerRatio*detector.PlanarDistance(lm[pip], wrist)
	}

	return FingerStates{
		Thumb:  tipDist > c.config.ThumbRatio*baseDist,
		Index:  extended(detector.IndexTip, detector.IndexPIP),
		Middle: extended(detector.MiddleTip, detector.MiddlePIP),
		Ring:   extended(detector.RingTip, detector.RingPIP),
		Pinky:  extended(detector.PinkyTip, detector.PinkyPIP),
	}
}

// rawClassify maps a finger-extension vector to a gesture type. Order
// matters: a fist wins over everything, a latched pinch wins over the open
// palm and the named shapes.
func (c *Classifier) rawClassify(fingers FingerStates, pinchDist float64, slot int) Type {
	s := &c.slots[slot]

	// Two-threshold hysteresis on the thumb-index tip distance.
	if s.pinching {
		if pinchDist > c.config.PinchEnd {
			s.pinching = false
		}
	} else if pinchDist < c.config.PinchStart {
		s.pinching = true
	}

	count := fingers.Count()
	thumbOnly := fingers.Thumb && count == 1
	indexOnly := fingers.Index && count == 1

	switch {
	case count <= 1 && !thumbOnly && !indexOnly:
		return TypeFist
	case s.pinching:
		return TypePinch
	case thumbOnly:
		return TypeThumbsUp
	case indexOnly:
		return TypePointing
	case fingers.Index && fingers.Middle && count == 2:
		return TypePeace
	case fingers.Index && fingers.Pinky && !fingers.Middle && !fingers.Ring:
		return TypeRock
	case count >= 4:
		return TypeOpen
	default:
		return TypeNone
	}
}

// vote pushes the raw type into the slot ring buffer and applies the
// majority rule: emit the modal type when it holds at least half the
// (filled) window, otherwise emit the raw type unchanged. This suppresses
// single-frame flicker without delaying real transitions by more than a
// frame or two.
func (c *Classifier) vote(raw Type, slot int) (Type, float64) {
	s := &c.slots[slot]

	s.history[s.next] = raw
	s.next = (s.next + 1) % len(s.history)
	if s.filled < len(s.history) {
		s.filled++
	}

	counts := make(map[Type]int, s.filled)
	for i := 0; i < s.filled; i++ {
		counts[s.history[i]]++
	}

	// Ties resolve to the raw type so the vote stays deterministic.
	modal := raw
	modalCount := counts[raw]
	for typ, n := range counts {
		if n > modalCount {
			modal, modalCount = typ, n
		}
	}

	threshold := (s.filled + 1) / 2 // ceil(filled/2)
	emitted := raw
	if modalCount >= threshold {
		emitted = modal
	}

	return emitted, float64(counts[emitted]) / float64(s.filled)
}

// palmCenter is the arithmetic mean of the wrist and the four non-thumb
// MCP landmarks, in the same coordinate space as the input.
func palmCenter(lm []detector.Point3D) detector.Point3D {
	idx := [5]int{detector.Wrist, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}

	var c detector.Point3D
	for _, i := range idx {
		c.X += lm[i].X
		c.Y += lm[i].Y
		c.Z += lm[i].Z
	}
	c.X /= 5
	c.Y /= 5
	c.Z /= 5
	return c
}
