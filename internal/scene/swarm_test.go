package scene

import (
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/space"
	"github.com/ayusman/mudra/internal/swarm"
)

func newTestSwarmScene() *SwarmScene {
	config := swarm.DefaultConfig()
	config.Count = 40
	config.Seed = 7
	return NewSwarmScene(space.NewMapper(space.DefaultConfig()), swarm.New(config))
}

func TestSwarmScene_FistGathersAtPalm(t *testing.T) {
	s := newTestSwarmScene()

	events := s.Step(frameWith(handAt(gesture.TypeFist, 0.5, 0.5)))
	if !hasEvent(events, EventGather) {
		t.Fatalf("no gather event, got %v", eventTypes(events))
	}
	if s.Simulator().Mode() != swarm.ModeGathering {
		t.Errorf("mode = %q, want gathering", s.Simulator().Mode())
	}
	if s.Simulator().Center() != (space.NewMapper(space.DefaultConfig()).World(0.5, 0.5, 0)) {
		t.Errorf("center = %v, want palm world position", s.Simulator().Center())
	}
}

func TestSwarmScene_HeldFistDragsCenter(t *testing.T) {
	s := newTestSwarmScene()

	s.Step(frameWith(handAt(gesture.TypeFist, 0.5, 0.5)))
	events := s.Step(frameWith(handAt(gesture.TypeFist, 0.4, 0.5)))

	if hasEvent(events, EventGather) {
		t.Error("second fist frame re-emitted gather")
	}
	if s.Simulator().Center().X == 0 {
		t.Error("center did not follow the moving fist")
	}
}

func TestSwarmScene_OpenHandScatters(t *testing.T) {
	s := newTestSwarmScene()

	s.Step(frameWith(handAt(gesture.TypeFist, 0.5, 0.5)))
	events := s.Step(frameWith(handAt(gesture.TypeOpen, 0.5, 0.5)))

	if !hasEvent(events, EventScatter) {
		t.Fatalf("no scatter on open hand, got %v", eventTypes(events))
	}
	if s.Simulator().Mode() != swarm.ModeScattered {
		t.Errorf("mode = %q, want scattered", s.Simulator().Mode())
	}
}

func TestSwarmScene_HandLossScatters(t *testing.T) {
	s := newTestSwarmScene()

	s.Step(frameWith(handAt(gesture.TypeFist, 0.5, 0.5)))
	events := s.Step(Frame{})

	if !hasEvent(events, EventScatter) {
		t.Fatalf("no scatter on hand loss, got %v", eventTypes(events))
	}
}

func TestSwarmScene_OtherGesturesLeaveModeAlone(t *testing.T) {
	s := newTestSwarmScene()

	s.Step(frameWith(handAt(gesture.TypeFist, 0.5, 0.5)))
	events := s.Step(frameWith(handAt(gesture.TypePointing, 0.5, 0.5)))

	if len(events) != 0 {
		t.Fatalf("pointing emitted %v", eventTypes(events))
	}
	if s.Simulator().Mode() == swarm.ModeScattered {
		t.Error("pointing should not scatter a gathered swarm")
	}
}

func TestSwarmScene_SnapshotCarriesParticles(t *testing.T) {
	s := newTestSwarmScene()
	s.Step(Frame{})

	snap := s.Snapshot()
	if snap.Scene != "swarm" {
		t.Errorf("scene = %q, want swarm", snap.Scene)
	}
	if len(snap.Particles) != 40 {
		t.Errorf("got %d particles, want 40", len(snap.Particles))
	}
	if snap.SwarmMode != swarm.ModeScattered {
		t.Errorf("mode = %q, want scattered", snap.SwarmMode)
	}
}
