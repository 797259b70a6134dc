package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestPlanarDistance(t *testing.T) {
	t.Run("ignores depth", func(t *testing.T) {
		a := Point3D{X: 0, Y: 0, Z: -5}
		b := Point3D{X: 3, Y: 4, Z: 12}

		if d := PlanarDistance(a, b); math.Abs(d-5.0) > epsilon {
			t.Errorf("expected planar distance 5.0, got %f", d)
		}
	})

	t.Run("zero for identical points", func(t *testing.T) {
		p := Point3D{X: 0.3, Y: 0.7, Z: -0.1}
		if d := PlanarDistance(p, p); d != 0 {
			t.Errorf("expected distance 0, got %f", d)
		}
	})
}

func TestWithWorld(t *testing.T) {
	obs := WithWorld(OpenPalmLandmarks())

	if !obs.HasWorld {
		t.Fatal("expected HasWorld to be set")
	}

	// Wrist should be at the world origin
	w := obs.World[Wrist]
	if w.X != 0 || w.Y != 0 || w.Z != 0 {
		t.Errorf("expected world wrist at origin, got %+v", w)
	}

	// Relative geometry must be preserved
	dx := obs.Landmarks[IndexMCP].X - obs.Landmarks[Wrist].X
	if math.Abs(obs.World[IndexMCP].X-dx) > epsilon {
		t.Errorf("expected world index MCP X %f, got %f", dx, obs.World[IndexMCP].X)
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns configured hands", func(t *testing.T) {
		m := NewMockDetector()
		m.SetHands([]Observation{FistLandmarks()})

		hands, err := m.Detect(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Right" {
			t.Errorf("expected Right hand, got %s", hands[0].Handedness)
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		m := NewMockDetector()
		wantErr := errors.New("detector offline")
		m.SetError(wantErr)

		if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
			t.Errorf("expected configured error, got %v", err)
		}
	})
}

func TestFixtures_DistinctPoses(t *testing.T) {
	// The fist and the open palm must differ substantially at the
	// fingertips or the classifier has nothing to discriminate.
	fist := FistLandmarks()
	open := OpenPalmLandmarks()

	tips := []int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}
	for _, tip := range tips {
		if PlanarDistance(fist.Landmarks[tip], open.Landmarks[tip]) < 0.05 {
			t.Errorf("tip %d nearly identical between fist and open palm", tip)
		}
	}
}

func TestPinchLandmarks_TipsTouch(t *testing.T) {
	obs := PinchLandmarks()
	d := PlanarDistance(obs.Landmarks[ThumbTip], obs.Landmarks[IndexTip])
	if d > 0.06 {
		t.Errorf("expected thumb and index tips within 0.06, got %f", d)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 2 {
		t.Errorf("expected MaxHands 2, got %d", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("expected MinConfidence 0.5, got %f", cfg.MinConfidence)
	}
	if !cfg.WorldLandmarks {
		t.Error("expected WorldLandmarks enabled by default")
	}
}
