package scene

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/space"
)

func pinchAt(x, y float64) Hand {
	return Hand{
		Present: true,
		Gesture: gesture.State{
			Type:        gesture.TypePinch,
			Confidence:  1,
			PalmCenter:  detector.Point3D{X: x, Y: y},
			PinchCenter: detector.Point3D{X: x, Y: y},
		},
	}
}

func newTestCubeScene() *CubeScene {
	return NewCubeScene(space.NewMapper(space.DefaultConfig()), interact.DefaultConfig())
}

func TestCubeScene_PinchGrabsNearbyCube(t *testing.T) {
	s := newTestCubeScene()

	// The cube rests at the scene origin, which is the view center.
	events := s.Step(frameWith(pinchAt(0.5, 0.5)))
	if !hasEvent(events, EventGrab) {
		t.Fatalf("no grab, got %v", eventTypes(events))
	}

	snap := s.Snapshot()
	if len(snap.Entities) != 1 || !snap.Entities[0].Held {
		t.Fatal("cube not held after pinch")
	}
}

func TestCubeScene_PinchFarAwayIsNoOp(t *testing.T) {
	s := newTestCubeScene()

	events := s.Step(frameWith(pinchAt(0.02, 0.02)))
	if len(events) != 0 {
		t.Fatalf("far pinch emitted %v", eventTypes(events))
	}
	if s.Snapshot().Entities[0].Held {
		t.Error("cube grabbed from outside the interaction radius")
	}
}

func TestCubeScene_CarryAndRelease(t *testing.T) {
	s := newTestCubeScene()

	s.Step(frameWith(pinchAt(0.5, 0.5)))
	s.Step(frameWith(pinchAt(0.4, 0.5)))

	carried := s.Snapshot().Entities[0].Pos
	if carried.X == 0 {
		t.Error("cube did not follow the pinch")
	}

	events := s.Step(frameWith(handAt(gesture.TypeOpen, 0.4, 0.5)))
	if !hasEvent(events, EventDrop) {
		t.Fatalf("no drop when pinch ended, got %v", eventTypes(events))
	}
	snap := s.Snapshot()
	if snap.Entities[0].Held {
		t.Error("cube still held after release")
	}
	if snap.Entities[0].Pos != carried {
		t.Error("cube moved after release")
	}
}

func TestCubeScene_HandLossKeepsCubeHeld(t *testing.T) {
	s := newTestCubeScene()

	s.Step(frameWith(pinchAt(0.5, 0.5)))
	events := s.Step(Frame{})

	if len(events) != 0 {
		t.Fatalf("hand loss emitted %v", eventTypes(events))
	}
	if !s.Snapshot().Entities[0].Held {
		t.Error("cube released on hand loss, expected it to stay owned")
	}
}
