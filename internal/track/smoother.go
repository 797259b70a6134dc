// Package track provides per-slot temporal filtering of hand landmarks.
package track

import (
	"github.com/ayusman/mudra/internal/detector"
)

// MaxSlots is the number of concurrently tracked hand slots.
const MaxSlots = 2

// DefaultAlpha is the exponential smoothing factor. 0.8 gives 80% weight
// to the newest sample: light smoothing that removes jitter without a
// visible trailing lag.
const DefaultAlpha = 0.8

// Smoother applies an exponential low-pass filter to successive landmark
// sets, independently per hand slot. The first observation after a reset
// passes through unchanged and seeds the history.
type Smoother struct {
	alpha  float64
	prev   [MaxSlots][detector.NumLandmarks]detector.Point3D
	seeded [MaxSlots]bool
}

// NewSmoother creates a Smoother with the given smoothing factor.
// Factors outside (0,1] fall back to DefaultAlpha.
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &Smoother{alpha: alpha}
}

// Smooth filters the raw landmark set for the given slot and returns the
// smoothed set. Slot indices outside [0,MaxSlots) return the input as-is.
func (s *Smoother) Smooth(raw [detector.NumLandmarks]detector.Point3D, slot int) [detector.NumLandmarks]detector.Point3D {
	if slot < 0 || slot >= MaxSlots {
		return raw
	}

	if !s.seeded[slot] {
		s.prev[slot] = raw
		s.seeded[slot] = true
		return raw
	}

	a := s.alpha
	for i := 0; i < detector.NumLandmarks; i++ {
		p := s.prev[slot][i]
		s.prev[slot][i] = detector.Point3D{
			X: p.X*(1-a) + raw[i].X*a,
			Y: p.Y*(1-a) + raw[i].Y*a,
			Z: p.Z*(1-a) + raw[i].Z*a,
		}
	}

	return s.prev[slot]
}

// Reset clears the history for a slot. Called when the detector reports
// no hand in that slot for a frame.
func (s *Smoother) Reset(slot int) {
	if slot < 0 || slot >= MaxSlots {
		return
	}
	s.seeded[slot] = false
}
