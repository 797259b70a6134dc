package scene

import (
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/space"
	"github.com/ayusman/mudra/internal/swarm"
)

// SwarmScene drives the particle field: a held fist gathers the swarm
// around the palm and drags it, an open hand or losing the hand scatters
// it again.
type SwarmScene struct {
	mapper *space.Mapper
	sim    *swarm.Simulator

	frame Frame
}

// NewSwarmScene builds the scene around a fresh simulator.
func NewSwarmScene(mapper *space.Mapper, sim *swarm.Simulator) *SwarmScene {
	return &SwarmScene{mapper: mapper, sim: sim}
}

func (s *SwarmScene) Name() string { return "swarm" }

// Simulator exposes the underlying simulator, mainly for tests.
func (s *SwarmScene) Simulator() *swarm.Simulator { return s.sim }

// Step applies the gesture rules and advances the simulation one tick.
// The first present hand controls the swarm; a second hand is ignored.
func (s *SwarmScene) Step(f Frame) []Event {
	s.frame = f
	var events []Event

	hand, found := s.controllingHand(f)
	switch {
	case found && hand.Gesture.Type == gesture.TypeFist:
		palm := hand.Gesture.PalmCenter
		center := s.mapper.World(palm.X, palm.Y, palm.Z)
		if s.sim.Mode() == swarm.ModeScattered {
			s.sim.Gather(center)
			events = append(events, Event{Type: EventGather})
		} else {
			s.sim.UpdateCenter(center)
		}
	case !found || hand.Gesture.Type == gesture.TypeOpen:
		if s.sim.Mode() != swarm.ModeScattered {
			s.sim.Scatter()
			events = append(events, Event{Type: EventScatter})
		}
	}

	s.sim.Step()
	return events
}

func (s *SwarmScene) controllingHand(f Frame) (Hand, bool) {
	for _, h := range f.Hands {
		if h.Present {
			return h, true
		}
	}
	return Hand{}, false
}

func (s *SwarmScene) Snapshot() RenderState {
	hands := handStates(s.frame)
	for slot := range hands {
		if hands[slot].Present {
			palm := s.frame.Hands[slot].Gesture.PalmCenter
			hands[slot].Palm = s.mapper.World(palm.X, palm.Y, palm.Z)
		}
	}

	particles := s.sim.Particles()
	rendered := make([]ParticleState, len(particles))
	for i, p := range particles {
		rendered[i] = ParticleState{Pos: p.Pos, Color: p.Color}
	}

	return RenderState{
		Scene:     s.Name(),
		Tick:      s.frame.Tick,
		Hands:     hands,
		Particles: rendered,
		SwarmMode: s.sim.Mode(),
	}
}
