package track

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func uniformLandmarks(x, y, z float64) [detector.NumLandmarks]detector.Point3D {
	var lm [detector.NumLandmarks]detector.Point3D
	for i := range lm {
		lm[i] = detector.Point3D{X: x, Y: y, Z: z}
	}
	return lm
}

func TestSmoother_FirstObservationPassesThrough(t *testing.T) {
	s := NewSmoother(DefaultAlpha)

	raw := uniformLandmarks(0.3, 0.6, -0.1)
	got := s.Smooth(raw, 0)

	if got != raw {
		t.Error("first observation should be returned unchanged")
	}
}

func TestSmoother_BlendsTowardNewSample(t *testing.T) {
	s := NewSmoother(0.8)

	s.Smooth(uniformLandmarks(0, 0, 0), 0)
	got := s.Smooth(uniformLandmarks(1, 1, 1), 0)

	// smoothed = prev*(1-0.8) + raw*0.8 = 0.8
	for i, p := range got {
		if math.Abs(p.X-0.8) > 1e-9 || math.Abs(p.Y-0.8) > 1e-9 || math.Abs(p.Z-0.8) > 1e-9 {
			t.Fatalf("landmark %d: expected (0.8,0.8,0.8), got %+v", i, p)
		}
	}
}

func TestSmoother_SlotsAreIndependent(t *testing.T) {
	s := NewSmoother(0.8)

	s.Smooth(uniformLandmarks(0, 0, 0), 0)
	got := s.Smooth(uniformLandmarks(1, 1, 1), 1)

	// Slot 1 has no history, so its first sample passes through.
	if got[0].X != 1 {
		t.Errorf("slot 1 first sample should pass through, got %f", got[0].X)
	}

	// Slot 0 history must be untouched by slot 1 traffic.
	got0 := s.Smooth(uniformLandmarks(1, 1, 1), 0)
	if math.Abs(got0[0].X-0.8) > 1e-9 {
		t.Errorf("slot 0 expected 0.8 after blend, got %f", got0[0].X)
	}
}

func TestSmoother_ResetClearsHistory(t *testing.T) {
	s := NewSmoother(0.8)

	s.Smooth(uniformLandmarks(0, 0, 0), 0)
	s.Reset(0)

	got := s.Smooth(uniformLandmarks(1, 1, 1), 0)
	if got[0].X != 1 {
		t.Errorf("after reset the next sample should pass through, got %f", got[0].X)
	}
}

func TestSmoother_OutOfRangeSlot(t *testing.T) {
	s := NewSmoother(0.8)

	raw := uniformLandmarks(0.5, 0.5, 0)
	if got := s.Smooth(raw, -1); got != raw {
		t.Error("negative slot should return input unchanged")
	}
	if got := s.Smooth(raw, MaxSlots); got != raw {
		t.Error("slot beyond MaxSlots should return input unchanged")
	}

	// Reset on a bad slot must not panic.
	s.Reset(-1)
	s.Reset(MaxSlots)
}

func TestSmoother_InvalidAlphaFallsBack(t *testing.T) {
	s := NewSmoother(0)

	s.Smooth(uniformLandmarks(0, 0, 0), 0)
	got := s.Smooth(uniformLandmarks(1, 1, 1), 0)

	if math.Abs(got[0].X-DefaultAlpha) > 1e-9 {
		t.Errorf("expected fallback alpha %f, got blend %f", DefaultAlpha, got[0].X)
	}
}
