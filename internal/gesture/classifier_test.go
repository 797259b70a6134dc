package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func classifyFixture(t *testing.T, c *Classifier, obs detector.Observation, slot int) State {
	t.Helper()
	return c.Classify(obs.Landmarks[:], slot)
}

func TestClassifier_FixturePoses(t *testing.T) {
	cases := []struct {
		name string
		obs  detector.Observation
		want Type
	}{
		{"fist", detector.FistLandmarks(), TypeFist},
		{"open palm", detector.OpenPalmLandmarks(), TypeOpen},
		{"pinch", detector.PinchLandmarks(), TypePinch},
		{"thumbs up", detector.ThumbsUpLandmarks(), TypeThumbsUp},
		{"pointing", detector.PointingLandmarks(), TypePointing},
		{"peace", detector.PeaceLandmarks(), TypePeace},
		{"rock", detector.RockLandmarks(), TypeRock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClassifier(DefaultConfig())
			state := classifyFixture(t, c, tc.obs, 0)
			if state.Type != tc.want {
				t.Errorf("expected %s, got %s (fingers %+v)", tc.want, state.Type, state.Fingers)
			}
			if state.Confidence <= 0 {
				t.Errorf("expected positive confidence, got %f", state.Confidence)
			}
		})
	}
}

func TestClassifier_MalformedInputFailsSoft(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	state := c.Classify(make([]detector.Point3D, 10), 0)
	if state.Type != TypeNone {
		t.Errorf("expected none for short landmark set, got %s", state.Type)
	}
	if state.Confidence != 0 {
		t.Errorf("expected zero confidence, got %f", state.Confidence)
	}

	// Malformed input must not pollute the history: a following fist is
	// still a fist with full confidence.
	state = classifyFixture(t, c, detector.FistLandmarks(), 0)
	if state.Type != TypeFist {
		t.Errorf("expected fist after malformed frame, got %s", state.Type)
	}
	if state.Confidence != 1 {
		t.Errorf("expected confidence 1, got %f", state.Confidence)
	}
}

func TestClassifier_MajorityVoteSuppressesFlicker(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	classifyFixture(t, c, detector.FistLandmarks(), 0)
	classifyFixture(t, c, detector.OpenPalmLandmarks(), 0)
	state := classifyFixture(t, c, detector.FistLandmarks(), 0)

	// History [fist, open, fist]: fist holds 2 of 3 >= ceil(3/2), so the
	// single open frame is voted away.
	if state.Type != TypeFist {
		t.Errorf("expected fist after [fist, open, fist], got %s", state.Type)
	}
	if math.Abs(state.Confidence-2.0/3.0) > 1e-9 {
		t.Errorf("expected confidence 2/3, got %f", state.Confidence)
	}
}

func TestClassifier_LegitimateTransitionWithinTwoFrames(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	classifyFixture(t, c, detector.FistLandmarks(), 0)
	classifyFixture(t, c, detector.FistLandmarks(), 0)
	classifyFixture(t, c, detector.FistLandmarks(), 0)

	classifyFixture(t, c, detector.OpenPalmLandmarks(), 0)
	state := classifyFixture(t, c, detector.OpenPalmLandmarks(), 0)

	if state.Type != TypeOpen {
		t.Errorf("expected open by second open frame, got %s", state.Type)
	}
}

func TestClassifier_PinchHysteresis(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	obs := detector.PinchLandmarks()
	state := classifyFixture(t, c, obs, 0)
	if state.Type != TypePinch {
		t.Fatalf("expected pinch on contact, got %s", state.Type)
	}

	// Widen the gap past the start threshold but below the end threshold:
	// the pinch must stay latched.
	obs.Landmarks[detector.ThumbTip] = detector.Point3D{X: 0.64, Y: 0.44}
	d := detector.PlanarDistance(obs.Landmarks[detector.ThumbTip], obs.Landmarks[detector.IndexTip])
	if d <= 0.06 || d >= 0.10 {
		t.Fatalf("test geometry broken: gap %f not inside hysteresis band", d)
	}
	for i := 0; i < 3; i++ {
		state = classifyFixture(t, c, obs, 0)
	}
	if state.Type != TypePinch {
		t.Errorf("expected pinch to stay latched inside hysteresis band, got %s", state.Type)
	}

	// Past the end threshold the latch releases and the pose reads as an
	// open hand again.
	obs.Landmarks[detector.ThumbTip] = detector.Point3D{X: 0.68, Y: 0.38}
	for i := 0; i < 3; i++ {
		state = classifyFixture(t, c, obs, 0)
	}
	if state.Type == TypePinch {
		t.Error("expected pinch to release past the end threshold")
	}
}

func TestClassifier_PinchBeatsOpen(t *testing.T) {
	// The pinch fixture has all five fingers nominally extended; the raw
	// count alone would read it as an open palm.
	c := NewClassifier(DefaultConfig())

	state := classifyFixture(t, c, detector.PinchLandmarks(), 0)
	if state.Fingers.Count() < 4 {
		t.Fatalf("fixture should have >= 4 extended fingers, got %d", state.Fingers.Count())
	}
	if state.Type != TypePinch {
		t.Errorf("pinch must win over open, got %s", state.Type)
	}
}

func TestClassifier_SlotsAreIndependent(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	classifyFixture(t, c, detector.FistLandmarks(), 0)
	state := classifyFixture(t, c, detector.OpenPalmLandmarks(), 1)

	if state.Type != TypeOpen {
		t.Errorf("slot 1 should not see slot 0 history, got %s", state.Type)
	}
}

func TestClassifier_ResetClearsHistoryAndLatch(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	classifyFixture(t, c, detector.PinchLandmarks(), 0)
	c.Reset(0)

	state := classifyFixture(t, c, detector.OpenPalmLandmarks(), 0)
	if state.Type != TypeOpen {
		t.Errorf("expected open after reset, got %s", state.Type)
	}
	if state.Confidence != 1 {
		t.Errorf("expected full confidence on fresh history, got %f", state.Confidence)
	}
}

func TestClassifier_PalmCenter(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	obs := detector.FistLandmarks()

	state := classifyFixture(t, c, obs, 0)

	var wantX, wantY float64
	for _, i := range []int{detector.Wrist, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP} {
		wantX += obs.Landmarks[i].X
		wantY += obs.Landmarks[i].Y
	}
	wantX /= 5
	wantY /= 5

	if math.Abs(state.PalmCenter.X-wantX) > 1e-9 || math.Abs(state.PalmCenter.Y-wantY) > 1e-9 {
		t.Errorf("palm center (%f,%f), want (%f,%f)", state.PalmCenter.X, state.PalmCenter.Y, wantX, wantY)
	}
}

func TestFingerStates_Count(t *testing.T) {
	if n := (FingerStates{}).Count(); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
	all := FingerStates{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true}
	if n := all.Count(); n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
}
